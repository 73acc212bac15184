package chart

import (
	"encoding/json"
	"testing"

	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

type fakeHandle struct {
	id        int
	destroyed int
}

func (h *fakeHandle) Destroy() { h.destroyed++ }

func TestPercentage(t *testing.T) {
	tests := []struct {
		value, total int
		expected     string
	}{
		{5, 10, "50.0"},
		{2, 10, "20.0"},
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{0, 0, "0.0"},
	}
	for _, tt := range tests {
		if got := Percentage(tt.value, tt.total); got != tt.expected {
			t.Errorf("Percentage(%d, %d) = %q, want %q", tt.value, tt.total, got, tt.expected)
		}
	}
}

func TestSentimentSpecTooltip(t *testing.T) {
	stats := types.SentimentStats{Positive: 5, Neutral: 2, Negative: 3}
	spec := NewSentimentSpec(stats, i18n.MustNew("en"))

	if spec.Percentage(0) != "50.0" {
		t.Errorf("positive share = %q, want 50.0", spec.Percentage(0))
	}
	if got := spec.Tooltip(0); got != "Positive 😊: 5 items (50.0%)" {
		t.Errorf("unexpected tooltip %q", got)
	}

	ko := NewSentimentSpec(stats, i18n.MustNew("ko"))
	if got := ko.Tooltip(2); got != "부정 😞: 3개 (30.0%)" {
		t.Errorf("unexpected korean tooltip %q", got)
	}
}

func TestSpecColors(t *testing.T) {
	spec := NewSentimentSpec(types.SentimentStats{}, i18n.MustNew("en"))
	if len(spec.BackgroundColors) != 3 || len(spec.BorderColors) != 3 {
		t.Fatal("expected three colors per set")
	}
	if spec.BackgroundColors[0] != "rgba(76, 175, 80, 0.8)" {
		t.Errorf("positive should be green, got %s", spec.BackgroundColors[0])
	}
	if spec.BorderColors[2] != "rgba(244, 67, 54, 1)" {
		t.Errorf("negative border should be opaque red, got %s", spec.BorderColors[2])
	}
	if spec.LegendPosition != "bottom" {
		t.Errorf("legend should sit below the chart, got %s", spec.LegendPosition)
	}
}

func TestConfigMarshals(t *testing.T) {
	spec := NewSentimentSpec(types.SentimentStats{Positive: 1, Neutral: 1, Negative: 2}, i18n.MustNew("en"))
	data, err := json.Marshal(spec.Config())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Datasets []struct {
				Data []int `json:"data"`
			} `json:"datasets"`
		} `json:"data"`
		Tooltips []string `json:"tooltips"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != "doughnut" {
		t.Errorf("expected doughnut, got %q", decoded.Type)
	}
	if len(decoded.Data.Datasets) != 1 || len(decoded.Data.Datasets[0].Data) != 3 {
		t.Fatalf("unexpected datasets: %+v", decoded.Data.Datasets)
	}
	if decoded.Tooltips[2] != "Negative 😞: 2 items (50.0%)" {
		t.Errorf("unexpected tooltip %q", decoded.Tooltips[2])
	}
}

func TestConfigMarshalsEmptyAndLargeCounts(t *testing.T) {
	for _, stats := range []types.SentimentStats{
		{},
		{Positive: 2_000_000_000, Neutral: 3, Negative: 0},
	} {
		spec := NewSentimentSpec(stats, i18n.MustNew("ko"))
		if _, err := json.Marshal(spec.Config()); err != nil {
			t.Errorf("marshal %+v: %v", stats, err)
		}
	}
}

func TestSlotReplaceDestroysPrevious(t *testing.T) {
	var slot Slot
	var drawn []*fakeHandle
	draw := func(Spec) Handle {
		h := &fakeHandle{id: len(drawn)}
		drawn = append(drawn, h)
		return h
	}

	spec := NewSentimentSpec(types.SentimentStats{Positive: 1}, i18n.MustNew("en"))
	slot.Replace(spec, draw)
	slot.Replace(spec, draw)
	slot.Replace(spec, draw)

	if len(drawn) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(drawn))
	}
	if drawn[0].destroyed != 1 || drawn[1].destroyed != 1 {
		t.Errorf("previous charts should be destroyed exactly once: %d, %d", drawn[0].destroyed, drawn[1].destroyed)
	}
	if drawn[2].destroyed != 0 {
		t.Error("current chart should not be destroyed")
	}
	if slot.Current() != Handle(drawn[2]) {
		t.Error("slot should hold the latest chart")
	}

	slot.Dispose()
	if drawn[2].destroyed != 1 || slot.Current() != nil {
		t.Error("dispose should destroy and clear the current chart")
	}
}
