package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

func ptr[T any](v T) *T { return &v }

func sampleSession() types.Session {
	return types.Session{
		ProductID: "B000000001",
		Info: &types.ProductInfo{
			ProductName:     ptr("Stainless Kettle"),
			TotalReviews:    ptr(1234),
			AvgRating:       ptr(4.5),
			SimilarProducts: []types.SimilarProduct{{ASIN: "B0SIMILAR1", Title: "Glass Kettle"}},
		},
		Reviews: []types.Review{
			{Rating: 5, Sentiment: types.SentimentPositive, Text: "boils\nfast"},
			{Rating: 4, Sentiment: types.SentimentPositive, Text: "quiet"},
			{Rating: 1, Sentiment: types.SentimentNegative, Text: "leaks"},
		},
		Stats:   types.SentimentStats{Positive: 2, Negative: 1},
		Summary: "Buyers like the speed.",
	}
}

func TestMarkdownReport(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf, i18n.MustNew("en"), "")
	w.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	n, err := w.Write(sampleSession())
	require.NoError(t, err)
	assert.Positive(t, n)

	out := buf.String()
	assert.Contains(t, out, "# Stainless Kettle")
	assert.Contains(t, out, "B000000001")
	assert.Contains(t, out, "1,234 items")
	assert.Contains(t, out, "2024-01-02 03:04:05 UTC")
	assert.Contains(t, out, "[Glass Kettle](https://www.amazon.com/dp/B0SIMILAR1)")
	assert.Contains(t, out, "```mermaid")
	assert.Contains(t, out, "Sentiment Distribution")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "Buyers like the speed.")
	assert.Contains(t, out, "boils fast")
	assert.Contains(t, out, "leaks")
}

func TestMarkdownReportWithoutReviews(t *testing.T) {
	var buf bytes.Buffer
	s := types.Session{ProductID: "B1"}

	_, err := NewMarkdownWriter(&buf, i18n.MustNew("en"), "").Write(s)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# No information")
	assert.Contains(t, out, "No competing products found.")
	assert.Contains(t, out, "No reviews analyzed yet.")
	assert.NotContains(t, out, "mermaid")
}

func TestCellFlattensText(t *testing.T) {
	assert.Equal(t, `a \| b c`, cell("a | b\n c"))
}
