package types

// ProductInfo is the aggregate metadata returned by /get-product-info.
// Every field is optional; the backend reports "not found" as zero values,
// so renderers treat nil and zero the same way.
type ProductInfo struct {
	ProductName     *string          `json:"product_name,omitempty"`
	TotalReviews    *int             `json:"total_reviews,omitempty"`
	AvgRating       *float64         `json:"avg_rating,omitempty"`
	PositiveRatio   *float64         `json:"positive_ratio,omitempty"`
	NegativeRatio   *float64         `json:"negative_ratio,omitempty"`
	SimilarProducts []SimilarProduct `json:"similar_products,omitempty"`
}

// SimilarProduct is a competing product listed next to the loaded one.
type SimilarProduct struct {
	ASIN  string `json:"asin"`
	Title string `json:"title"`
}

// Session is the in-memory state held for the lifetime of one dashboard.
// It is replaced field by field by the latest successful response.
type Session struct {
	// ProductID is set by a successful product info lookup. Empty means absent.
	ProductID string `json:"product_id,omitempty"`

	// Reviews is the most recently analyzed review collection.
	Reviews []Review `json:"reviews"`

	// Stats and Summary accompany Reviews from the same analysis.
	Stats   SentimentStats `json:"sentiment_stats"`
	Summary string         `json:"summary,omitempty"`

	// Info is the last product info shown.
	Info *ProductInfo `json:"product_info,omitempty"`
}

// HasProduct reports whether a product has been loaded.
func (s *Session) HasProduct() bool {
	return s.ProductID != ""
}

// HasReviews reports whether there is anything to export.
func (s *Session) HasReviews() bool {
	return len(s.Reviews) > 0
}

// Clone returns a copy that shares no slices with s.
func (s *Session) Clone() Session {
	out := *s
	out.Reviews = append([]Review(nil), s.Reviews...)
	return out
}
