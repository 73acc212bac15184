package dashboard

import (
	"github.com/IshaanNene/ReviewScope/internal/chart"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// Region is a named, independently toggleable area of the display.
type Region string

const (
	RegionLoading     Region = "loading"
	RegionError       Region = "error"
	RegionProductInfo Region = "product-info"
	RegionResults     Region = "results"
	RegionReviews     Region = "reviews-display"
)

// Regions lists every region. All start hidden.
var Regions = []Region{RegionLoading, RegionError, RegionProductInfo, RegionResults, RegionReviews}

// Button identifies a user trigger.
type Button string

const (
	ButtonGetInfo Button = "get-info"
	ButtonAnalyze Button = "analyze"
	ButtonExport  Button = "export"
)

// View is the display the controller drives. Implementations need not be
// safe for concurrent use; the controller serializes every call.
type View interface {
	SetRegionVisible(region Region, visible bool)
	SetLoadingText(text string)
	SetErrorText(text string)
	SetButtonBusy(button Button, busy bool)
	RenderProductInfo(p ProductView)
	RenderStats(stats types.SentimentStats, summary string)
	NewChart(spec chart.Spec) chart.Handle
	RenderTable(rows []TableRow)
	ScrollIntoView(region Region)
}

// ProductView is product info with every field already formatted.
type ProductView struct {
	Name          string
	TotalReviews  string
	AvgRating     string
	PositiveRatio string
	NegativeRatio string

	// Similar is empty when NoSimilar should be shown instead.
	Similar   []SimilarLink
	NoSimilar string
}

// SimilarLink points at a competing product page, opened in a new tab.
type SimilarLink struct {
	Title string
	URL   string
}

// TableRow is one rendered review.
type TableRow struct {
	Index          int
	Stars          string
	Rating         string
	Sentiment      types.Sentiment
	SentimentLabel string
	Text           string
}
