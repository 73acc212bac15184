package dashboard

import (
	"math"
	"strconv"
	"strings"

	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// StarGlyph is repeated floor(rating) times in the review table.
const StarGlyph = "⭐"

// DefaultProductURL prefixes an ASIN to build a product page link.
const DefaultProductURL = "https://www.amazon.com/dp/"

// BuildProductView formats product info. Absent fields, and the zero values
// the backend uses for "not found", become the placeholder text.
func BuildProductView(info *types.ProductInfo, cat *i18n.Catalog, productURL string) ProductView {
	if info == nil {
		info = &types.ProductInfo{}
	}
	if productURL == "" {
		productURL = DefaultProductURL
	}
	none := cat.T(i18n.MsgNoInformation)

	p := ProductView{
		Name:          none,
		TotalReviews:  none,
		AvgRating:     none,
		PositiveRatio: none,
		NegativeRatio: none,
	}
	if info.ProductName != nil && *info.ProductName != "" {
		p.Name = *info.ProductName
	}
	if info.TotalReviews != nil && *info.TotalReviews != 0 {
		p.TotalReviews = cat.T(i18n.MsgCount, *info.TotalReviews)
	}
	if info.AvgRating != nil && *info.AvgRating != 0 {
		p.AvgRating = cat.T(i18n.MsgPoints, FormatDecimal(*info.AvgRating))
	}
	if info.PositiveRatio != nil && *info.PositiveRatio != 0 {
		p.PositiveRatio = cat.T(i18n.MsgPercent, FormatDecimal(*info.PositiveRatio))
	}
	if info.NegativeRatio != nil && *info.NegativeRatio != 0 {
		p.NegativeRatio = cat.T(i18n.MsgPercent, FormatDecimal(*info.NegativeRatio))
	}

	for _, sp := range info.SimilarProducts {
		p.Similar = append(p.Similar, SimilarLink{
			Title: sp.Title,
			URL:   productURL + sp.ASIN,
		})
	}
	if len(p.Similar) == 0 {
		p.NoSimilar = cat.T(i18n.MsgNoSimilar)
	}
	return p
}

// BuildTableRows formats reviews in their given order with 1-based indexes.
func BuildTableRows(reviews []types.Review, cat *i18n.Catalog) []TableRow {
	rows := make([]TableRow, len(reviews))
	for i, r := range reviews {
		rows[i] = TableRow{
			Index:          i + 1,
			Stars:          StarGlyphs(r.Rating),
			Rating:         cat.T(i18n.MsgPoints, FormatDecimal(r.Rating)),
			Sentiment:      r.Sentiment,
			SentimentLabel: SentimentLabel(r.Sentiment, cat),
			Text:           r.Text,
		}
	}
	return rows
}

// StarGlyphs returns floor(rating) stars, clamped to 0..5.
func StarGlyphs(rating float64) string {
	n := int(math.Floor(rating))
	if n < 0 || math.IsNaN(rating) {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat(StarGlyph, n)
}

// SentimentLabel returns the localized badge text. Unknown values are shown as-is.
func SentimentLabel(s types.Sentiment, cat *i18n.Catalog) string {
	switch s {
	case types.SentimentPositive:
		return cat.T(i18n.MsgPositive)
	case types.SentimentNeutral:
		return cat.T(i18n.MsgNeutral)
	case types.SentimentNegative:
		return cat.T(i18n.MsgNegative)
	}
	return string(s)
}

// FormatDecimal prints v with the fewest digits that round-trip (4.7, 66.7, 5).
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
