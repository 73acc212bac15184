package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/IshaanNene/ReviewScope/internal/chart"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// Element IDs of the dashboard page.
var (
	regionIDs = map[Region]string{
		RegionLoading:     "loadingSection",
		RegionError:       "errorSection",
		RegionProductInfo: "productInfoSection",
		RegionResults:     "resultsSection",
		RegionReviews:     "reviewsDisplaySection",
	}
	buttonIDs = map[Button]string{
		ButtonGetInfo: "getInfoBtn",
		ButtonAnalyze: "analyzeReviewsBtn",
		ButtonExport:  "exportCsvBtn",
	}
)

const (
	styleShown  = "display: block"
	styleHidden = "display: none"
)

// HTMLView keeps the dashboard page as a parsed document and edits it by
// element ID. It is safe for concurrent use.
type HTMLView struct {
	mu      sync.Mutex
	doc     *goquery.Document
	chartID int
}

// NewHTMLView parses the embedded page with every region hidden.
func NewHTMLView() (*HTMLView, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard page: %w", err)
	}
	return &HTMLView{doc: doc}, nil
}

// HTML renders the current document. A scroll target set by ScrollIntoView
// is rendered once, so later loads stay where the user is.
func (v *HTMLView) HTML() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	page, err := v.doc.Html()
	v.doc.Find("body").RemoveAttr("data-scroll-target")
	return page, err
}

// SetInputValue fills the product input field.
func (v *HTMLView) SetInputValue(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc.Find("#productInput").SetAttr("value", value)
}

func (v *HTMLView) SetRegionVisible(region Region, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	style := styleHidden
	if visible {
		style = styleShown
	}
	v.doc.Find("#"+regionIDs[region]).SetAttr("style", style)
}

func (v *HTMLView) SetLoadingText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc.Find("#loadingText").SetText(text)
}

func (v *HTMLView) SetErrorText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc.Find("#errorMessage").SetText(text)
}

func (v *HTMLView) SetButtonBusy(button Button, busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	btn := v.doc.Find("#" + buttonIDs[button])
	if busy {
		btn.SetAttr("disabled", "disabled")
		btn.Find(".btn-text").SetAttr("style", styleHidden)
		btn.Find(".btn-loading").SetAttr("style", "display: inline-block")
		return
	}
	btn.RemoveAttr("disabled")
	btn.Find(".btn-text").RemoveAttr("style")
	btn.Find(".btn-loading").SetAttr("style", styleHidden)
}

func (v *HTMLView) RenderProductInfo(p ProductView) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.doc.Find("#productName").SetText(p.Name)
	v.doc.Find("#totalReviews").SetText(p.TotalReviews)
	v.doc.Find("#avgRating").SetText(p.AvgRating)
	v.doc.Find("#positiveRatio").SetText(p.PositiveRatio)
	v.doc.Find("#negativeRatio").SetText(p.NegativeRatio)

	similar := v.doc.Find("#similarProducts")
	similar.Empty()
	if len(p.Similar) == 0 {
		similar.AppendHtml(`<p class="no-similar"></p>`)
		similar.Find("p").SetText(p.NoSimilar)
		return
	}
	for _, s := range p.Similar {
		similar.AppendHtml(`<div class="similar-product-item"><a target="_blank" rel="noopener noreferrer"></a></div>`)
		similar.Find(".similar-product-item").Last().Find("a").
			SetAttr("href", s.URL).
			SetText(s.Title)
	}
}

func (v *HTMLView) RenderStats(stats types.SentimentStats, summary string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc.Find("#positiveCount").SetText(strconv.Itoa(stats.Positive))
	v.doc.Find("#neutralCount").SetText(strconv.Itoa(stats.Neutral))
	v.doc.Find("#negativeCount").SetText(strconv.Itoa(stats.Negative))
	v.doc.Find("#summaryContent").SetText(summary)
}

// NewChart embeds the chart config for the page script to draw.
func (v *HTMLView) NewChart(spec chart.Spec) chart.Handle {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.chartID++
	id := strconv.Itoa(v.chartID)
	// Config holds only strings, ints and maps and slices of them, which
	// always marshal.
	raw, _ := json.Marshal(spec.Config())
	v.setScript("#sentimentChartConfig", string(raw))
	v.doc.Find("#sentimentChart").SetAttr("data-chart-id", id)
	return &htmlChart{view: v, id: id}
}

func (v *HTMLView) RenderTable(rows []TableRow) {
	v.mu.Lock()
	defer v.mu.Unlock()

	body := v.doc.Find("#reviewsTableBody")
	body.Empty()
	for _, r := range rows {
		body.AppendHtml(`<tr><td class="review-index"></td>` +
			`<td><div class="rating-stars"></div><div class="rating-value"></div></td>` +
			`<td><span class="sentiment-badge"></span></td>` +
			`<td><div class="review-text"></div></td></tr>`)
		tr := body.Find("tr").Last()
		tr.Find(".review-index").SetText(strconv.Itoa(r.Index))
		tr.Find(".rating-stars").SetText(r.Stars)
		tr.Find(".rating-value").SetText(r.Rating)
		tr.Find(".sentiment-badge").AddClass(string(r.Sentiment)).SetText(r.SentimentLabel)
		tr.Find(".review-text").SetText(r.Text)
	}
}

// ScrollIntoView marks the region the page script scrolls to on load.
func (v *HTMLView) ScrollIntoView(region Region) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc.Find("body").SetAttr("data-scroll-target", regionIDs[region])
}

type htmlChart struct {
	view *HTMLView
	id   string
}

// Destroy clears the embedded config unless a newer chart replaced it.
func (c *htmlChart) Destroy() {
	v := c.view
	v.mu.Lock()
	defer v.mu.Unlock()

	canvas := v.doc.Find("#sentimentChart")
	if id, _ := canvas.Attr("data-chart-id"); id != c.id {
		return
	}
	canvas.RemoveAttr("data-chart-id")
	v.setScript("#sentimentChartConfig", "")
}

// setScript replaces a script element's body verbatim. SetText would
// entity-escape it, and script content is never unescaped.
func (v *HTMLView) setScript(selector, body string) {
	sel := v.doc.Find(selector)
	sel.Empty()
	if body != "" {
		sel.AppendNodes(&html.Node{Type: html.TextNode, Data: body})
	}
}
