package types

import "fmt"

// Sentiment is the tone classification the backend assigns to a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Review is a single analyzed review as returned by /analyze-reviews.
type Review struct {
	// Rating is the star rating, 0-5 expected.
	Rating float64 `json:"rating"`

	// Sentiment is the classification assigned by the backend.
	Sentiment Sentiment `json:"sentiment"`

	// Text is the free review text.
	Text string `json:"text"`
}

// SentimentStats holds per-category review counts.
// Negative counts are rejected, but the sum is not checked against the
// review list.
type SentimentStats struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total returns the sum of all three counts.
func (s SentimentStats) Total() int {
	return s.Positive + s.Neutral + s.Negative
}

// Values returns the counts in display order (positive, neutral, negative).
func (s SentimentStats) Values() []int {
	return []int{s.Positive, s.Neutral, s.Negative}
}

// Count returns the count for one category.
func (s SentimentStats) Count(sentiment Sentiment) int {
	switch sentiment {
	case SentimentPositive:
		return s.Positive
	case SentimentNeutral:
		return s.Neutral
	case SentimentNegative:
		return s.Negative
	}
	return 0
}

// Validate rejects negative counts.
func (s SentimentStats) Validate() error {
	if s.Positive < 0 || s.Neutral < 0 || s.Negative < 0 {
		return fmt.Errorf("sentiment counts must be >= 0, got %d/%d/%d", s.Positive, s.Neutral, s.Negative)
	}
	return nil
}
