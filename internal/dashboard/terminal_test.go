package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ReviewScope/internal/chart"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

func TestTerminalViewPrintsRegionsWhenShown(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf, false)
	cat := i18n.MustNew("en")

	v.RenderProductInfo(BuildProductView(&types.ProductInfo{ProductName: ptr("Kettle")}, cat, ""))
	assert.Empty(t, buf.String())

	v.SetRegionVisible(RegionProductInfo, true)
	out := buf.String()
	assert.Contains(t, out, "📦 Kettle")
	assert.Contains(t, out, "No competing products found.")

	// Showing an already visible region prints nothing new.
	buf.Reset()
	v.SetRegionVisible(RegionProductInfo, true)
	assert.Empty(t, buf.String())
}

func TestTerminalViewResultsAndTable(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf, false)
	cat := i18n.MustNew("en")

	stats := types.SentimentStats{Positive: 2, Neutral: 1, Negative: 1}
	reviews := []types.Review{
		{Rating: 5, Sentiment: types.SentimentPositive, Text: "great\nkettle"},
		{Rating: 1, Sentiment: types.SentimentNegative, Text: "leaks"},
	}

	v.RenderStats(stats, "Mostly positive.")
	v.NewChart(chart.NewSentimentSpec(stats, cat))
	v.RenderTable(BuildTableRows(reviews, cat))
	v.SetRegionVisible(RegionResults, true)
	v.SetRegionVisible(RegionReviews, true)

	out := buf.String()
	assert.Contains(t, out, "Positive 😊: 2 items (50.0%)")
	assert.Contains(t, out, "📝 Mostly positive.")
	assert.Contains(t, out, "great kettle")
	assert.Contains(t, out, "⭐⭐⭐⭐⭐ 5 points")
	assert.Less(t, strings.Index(out, "Mostly positive."), strings.Index(out, "leaks"))
	assert.NotContains(t, out, "\033[")
}

func TestTerminalViewErrorAndBusy(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf, true)

	v.SetErrorText("product not found")
	v.SetRegionVisible(RegionError, true)
	v.SetButtonBusy(ButtonGetInfo, true)

	assert.Contains(t, buf.String(), ansiRed+"❌ product not found"+ansiReset)
	assert.True(t, v.Visible(RegionError))
	assert.True(t, v.Busy(ButtonGetInfo))
}

func TestTerminalViewDrivenByController(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf, false)
	stub := &stubBackend{
		productInfo: func(ctx context.Context, input string) (*types.ProductInfoResponse, error) {
			return &types.ProductInfoResponse{
				ProductID:   "B1",
				ProductInfo: types.ProductInfo{ProductName: ptr("Kettle")},
			}, nil
		},
	}
	ctrl := NewController(stub, v, i18n.MustNew("en"), testLogger)

	require.NoError(t, ctrl.GetProductInfo(context.Background(), "B1"))
	out := buf.String()
	assert.Contains(t, out, "⏳ Fetching product info...")
	assert.Contains(t, out, "📦 Kettle")
	assert.False(t, v.Visible(RegionLoading))
	assert.False(t, v.Busy(ButtonGetInfo))
}

func TestTerminalChartClampsBars(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf, false)

	spec := chart.Spec{
		Labels: []string{"Positive", "Neutral", "Negative"},
		Data:   []int{5, 0, -3},
	}
	v.NewChart(spec)
	require.NotPanics(t, func() { v.SetRegionVisible(RegionResults, true) })

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for _, line := range lines {
		assert.LessOrEqual(t, strings.Count(line, "█")+strings.Count(line, "░"), barWidth)
	}
	assert.Contains(t, buf.String(), strings.Repeat("█", barWidth))
}
