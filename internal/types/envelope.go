package types

// Backend endpoint paths.
const (
	EndpointProductInfo = "/get-product-info"
	EndpointAnalyze     = "/analyze-reviews"
	EndpointExport      = "/export-csv"
)

// ProductInfoRequest is the body of POST /get-product-info.
type ProductInfoRequest struct {
	ProductInput string `json:"product_input"`
}

// ProductInfoResponse is the success body of POST /get-product-info.
type ProductInfoResponse struct {
	ProductID   string      `json:"product_id"`
	ProductInfo ProductInfo `json:"product_info"`
}

// AnalyzeRequest is the body of POST /analyze-reviews.
type AnalyzeRequest struct {
	ProductID string `json:"product_id"`
}

// AnalyzeResponse is the success body of POST /analyze-reviews.
type AnalyzeResponse struct {
	Reviews        []Review       `json:"reviews"`
	SentimentStats SentimentStats `json:"sentiment_stats"`
	Summary        string         `json:"summary"`
}

// ExportRequest is the body of POST /export-csv.
type ExportRequest struct {
	Reviews []Review `json:"reviews"`
}

// ExportResponse is the success body of POST /export-csv.
type ExportResponse struct {
	CSVData  string `json:"csv_data"`
	Filename string `json:"filename"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}
