package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/IshaanNene/ReviewScope/internal/chart"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiAmber = "\033[33m"
	ansiDim   = "\033[2m"

	barWidth = 30
)

// TerminalView renders regions as text. A terminal cannot take output back,
// so content is written when its region becomes visible.
type TerminalView struct {
	out   io.Writer
	color bool

	visible map[Region]bool
	busy    map[Button]bool

	loading string
	errText string
	product ProductView
	stats   types.SentimentStats
	summary string
	chart   *terminalChart
	rows    []TableRow
}

// NewTerminalView writes to out, using ANSI colors when color is set.
func NewTerminalView(out io.Writer, color bool) *TerminalView {
	return &TerminalView{
		out:     out,
		color:   color,
		visible: make(map[Region]bool),
		busy:    make(map[Button]bool),
	}
}

// Visible reports whether region is currently shown.
func (v *TerminalView) Visible(region Region) bool { return v.visible[region] }

// Busy reports whether button is currently disabled.
func (v *TerminalView) Busy(button Button) bool { return v.busy[button] }

func (v *TerminalView) SetRegionVisible(region Region, visible bool) {
	was := v.visible[region]
	v.visible[region] = visible
	if !visible || was {
		return
	}
	switch region {
	case RegionLoading:
		fmt.Fprintf(v.out, "⏳ %s\n", v.loading)
	case RegionError:
		fmt.Fprintln(v.out, v.paint(ansiRed, "❌ "+v.errText))
	case RegionProductInfo:
		v.printProduct()
	case RegionResults:
		v.printResults()
	case RegionReviews:
		v.PrintTable(v.rows)
	}
}

func (v *TerminalView) SetLoadingText(text string) { v.loading = text }

func (v *TerminalView) SetErrorText(text string) {
	v.errText = text
	if v.visible[RegionError] {
		fmt.Fprintln(v.out, v.paint(ansiRed, "❌ "+text))
	}
}

func (v *TerminalView) SetButtonBusy(button Button, busy bool) { v.busy[button] = busy }

func (v *TerminalView) RenderProductInfo(p ProductView) { v.product = p }

func (v *TerminalView) RenderStats(stats types.SentimentStats, summary string) {
	v.stats = stats
	v.summary = summary
}

func (v *TerminalView) NewChart(spec chart.Spec) chart.Handle {
	v.chart = &terminalChart{spec: spec}
	return v.chart
}

func (v *TerminalView) RenderTable(rows []TableRow) {
	v.rows = rows
	if v.visible[RegionReviews] {
		v.PrintTable(rows)
	}
}

// ScrollIntoView prints a rule under the region that was scrolled to.
func (v *TerminalView) ScrollIntoView(Region) {
	fmt.Fprintln(v.out, v.paint(ansiDim, strings.Repeat("─", 60)))
}

func (v *TerminalView) printProduct() {
	p := v.product
	fmt.Fprintf(v.out, "\n📦 %s\n", p.Name)
	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "   Reviews\t%s\n", p.TotalReviews)
	fmt.Fprintf(w, "   Rating\t%s\n", p.AvgRating)
	fmt.Fprintf(w, "   Positive\t%s\n", p.PositiveRatio)
	fmt.Fprintf(w, "   Negative\t%s\n", p.NegativeRatio)
	w.Flush()

	fmt.Fprintln(v.out, "\n🔗 Similar products")
	if len(p.Similar) == 0 {
		fmt.Fprintf(v.out, "   %s\n", p.NoSimilar)
		return
	}
	for _, s := range p.Similar {
		fmt.Fprintf(v.out, "   • %s\n     %s\n", s.Title, v.paint(ansiDim, s.URL))
	}
}

func (v *TerminalView) printResults() {
	fmt.Fprintf(v.out, "\n📊 %s %d   %s %d   %s %d\n",
		v.paint(ansiGreen, "▲"), v.stats.Positive,
		v.paint(ansiAmber, "●"), v.stats.Neutral,
		v.paint(ansiRed, "▼"), v.stats.Negative)

	if v.chart != nil && !v.chart.destroyed {
		v.printChart(v.chart.spec)
	}
	if v.summary != "" {
		fmt.Fprintf(v.out, "\n📝 %s\n", v.summary)
	}
}

func (v *TerminalView) printChart(spec chart.Spec) {
	colors := []string{ansiGreen, ansiAmber, ansiRed}
	total := spec.Total()
	fmt.Fprintln(v.out)
	for i := range spec.Labels {
		n := 0
		if total > 0 {
			n = min(max(spec.Data[i]*barWidth/total, 0), barWidth)
		}
		bar := strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
		fmt.Fprintf(v.out, "   %s %s\n", v.paint(colors[i%len(colors)], bar), spec.Tooltip(i))
	}
}

// PrintTable writes the review table with aligned columns.
func (v *TerminalView) PrintTable(rows []TableRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(v.out)
	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tRating\tSentiment\tReview")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", r.Index, r.Stars, r.Rating, r.SentimentLabel, oneLine(r.Text))
	}
	w.Flush()
}

func (v *TerminalView) paint(code, s string) string {
	if !v.color {
		return s
	}
	return code + s + ansiReset
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type terminalChart struct {
	spec      chart.Spec
	destroyed bool
}

func (c *terminalChart) Destroy() { c.destroyed = true }
