// Package report writes the loaded product and its review analysis as a
// Markdown document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/IshaanNene/ReviewScope/internal/chart"
	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// MarkdownWriter renders a session as Markdown.
type MarkdownWriter struct {
	output     io.Writer
	cat        *i18n.Catalog
	productURL string
	now        func() time.Time
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, cat *i18n.Catalog, productURL string) *MarkdownWriter {
	return &MarkdownWriter{
		output:     output,
		cat:        cat,
		productURL: productURL,
		now:        time.Now,
	}
}

// Write outputs the full report and returns the number of bytes written.
func (w *MarkdownWriter) Write(session types.Session) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, session)
	w.writeSimilar(md, session)
	w.writeSentiment(md, session)
	w.writeReviews(md, session)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s types.Session) {
	p := dashboard.BuildProductView(s.Info, w.cat, w.productURL)

	md.H1(p.Name)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Product ID", "`" + s.ProductID + "`"},
			{"Reviews", p.TotalReviews},
			{"Rating", p.AvgRating},
			{"Positive", p.PositiveRatio},
			{"Negative", p.NegativeRatio},
			{"Generated", w.now().Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSimilar(md *markdown.Markdown, s types.Session) {
	p := dashboard.BuildProductView(s.Info, w.cat, w.productURL)

	md.H2("Similar Products")
	md.PlainText("")
	if len(p.Similar) == 0 {
		md.PlainText(p.NoSimilar)
		md.PlainText("")
		return
	}
	links := make([]string, len(p.Similar))
	for i, sp := range p.Similar {
		links[i] = "[" + sp.Title + "](" + sp.URL + ")"
	}
	md.BulletList(links...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeSentiment(md *markdown.Markdown, s types.Session) {
	if !s.HasReviews() {
		return
	}
	spec := chart.NewSentimentSpec(s.Stats, w.cat)

	md.H2("Sentiment")
	md.PlainText("")
	rows := make([][]string, len(spec.Labels))
	for i, label := range spec.Labels {
		rows[i] = []string{label, strconv.Itoa(spec.Data[i]), spec.Percentage(i) + "%"}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Sentiment", "Count", "Share"},
		Rows:   rows,
	})
	md.PlainText("")

	if spec.Total() > 0 {
		pie := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Sentiment Distribution"),
			piechart.WithShowData(true),
		)
		for i, label := range spec.Labels {
			if spec.Data[i] > 0 {
				pie.LabelAndIntValue(label, uint64(spec.Data[i]))
			}
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, pie.String())
		md.PlainText("")
	}

	switch {
	case s.Stats.Negative > s.Stats.Positive:
		md.Warningf("Negative reviews outnumber positive ones (%d vs %d).", s.Stats.Negative, s.Stats.Positive)
	case s.Stats.Positive > 0:
		md.Tip(fmt.Sprintf("%d of %d reviews are positive.", s.Stats.Positive, s.Stats.Total()))
	}
	md.PlainText("")

	if s.Summary != "" {
		md.H3("Summary")
		md.PlainText("")
		md.PlainText(s.Summary)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeReviews(md *markdown.Markdown, s types.Session) {
	md.H2("Reviews")
	md.PlainText("")
	if !s.HasReviews() {
		md.PlainText("No reviews analyzed yet.")
		md.PlainText("")
		return
	}

	rows := dashboard.BuildTableRows(s.Reviews, w.cat)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			strconv.Itoa(r.Index),
			r.Stars + " " + r.Rating,
			r.SentimentLabel,
			cell(r.Text),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Rating", "Sentiment", "Review"},
		Rows:   cells,
	})
}

// cell keeps free text inside a single table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
