// Package chart describes the sentiment doughnut chart independently of
// whatever draws it, and owns the lifecycle of the drawn instance.
package chart

import (
	"fmt"
	"sync"

	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// Fixed category colors, in display order (positive, neutral, negative).
var (
	BackgroundColors = []string{
		"rgba(76, 175, 80, 0.8)",
		"rgba(255, 152, 0, 0.8)",
		"rgba(244, 67, 54, 0.8)",
	}
	BorderColors = []string{
		"rgba(76, 175, 80, 1)",
		"rgba(255, 152, 0, 1)",
		"rgba(244, 67, 54, 1)",
	}
)

// Spec is everything needed to draw the sentiment chart.
type Spec struct {
	Labels           []string
	Data             []int
	BackgroundColors []string
	BorderColors     []string
	BorderWidth      int
	LegendPosition   string

	cat *i18n.Catalog
}

// NewSentimentSpec builds the doughnut spec for three sentiment counts.
func NewSentimentSpec(stats types.SentimentStats, cat *i18n.Catalog) Spec {
	return Spec{
		Labels: []string{
			cat.T(i18n.MsgChartPositive),
			cat.T(i18n.MsgChartNeutral),
			cat.T(i18n.MsgChartNegative),
		},
		Data:             stats.Values(),
		BackgroundColors: BackgroundColors,
		BorderColors:     BorderColors,
		BorderWidth:      2,
		LegendPosition:   "bottom",
		cat:              cat,
	}
}

// Total returns the sum of all data points.
func (s Spec) Total() int {
	total := 0
	for _, v := range s.Data {
		total += v
	}
	return total
}

// Percentage returns value/total*100 with one decimal place.
// A zero total yields "0.0".
func Percentage(value, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(value)/float64(total)*100)
}

// Percentage returns the share of data point i.
func (s Spec) Percentage(i int) string {
	return Percentage(s.Data[i], s.Total())
}

// Tooltip returns the hover text for data point i: label, count and share.
func (s Spec) Tooltip(i int) string {
	if s.cat == nil {
		return fmt.Sprintf("%s: %d (%s%%)", s.Labels[i], s.Data[i], s.Percentage(i))
	}
	return s.cat.T(i18n.MsgTooltip, s.Labels[i], s.Data[i], s.Percentage(i))
}

// Tooltips returns Tooltip for every data point.
func (s Spec) Tooltips() []string {
	out := make([]string, len(s.Data))
	for i := range s.Data {
		out[i] = s.Tooltip(i)
	}
	return out
}

// Config returns a Chart.js doughnut configuration. The precomputed
// tooltip strings ride along under "tooltips" for the page script.
func (s Spec) Config() map[string]any {
	return map[string]any{
		"type": "doughnut",
		"data": map[string]any{
			"labels": s.Labels,
			"datasets": []map[string]any{{
				"data":            s.Data,
				"backgroundColor": s.BackgroundColors,
				"borderColor":     s.BorderColors,
				"borderWidth":     s.BorderWidth,
			}},
		},
		"options": map[string]any{
			"responsive":          true,
			"maintainAspectRatio": true,
			"plugins": map[string]any{
				"legend": map[string]any{
					"position": s.LegendPosition,
					"labels": map[string]any{
						"font":    map[string]any{"size": 14},
						"padding": 20,
					},
				},
			},
		},
		"tooltips": s.Tooltips(),
	}
}

// Handle is a drawn chart instance.
type Handle interface {
	Destroy()
}

// Factory draws a chart and returns its handle.
type Factory func(Spec) Handle

// Slot owns at most one drawn chart.
type Slot struct {
	mu      sync.Mutex
	current Handle
}

// Replace destroys the previous chart, if any, then draws spec.
func (s *Slot) Replace(spec Spec, draw Factory) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Destroy()
		s.current = nil
	}
	s.current = draw(spec)
	return s.current
}

// Current returns the drawn chart or nil.
func (s *Slot) Current() Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dispose destroys the drawn chart, if any.
func (s *Slot) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Destroy()
		s.current = nil
	}
}
