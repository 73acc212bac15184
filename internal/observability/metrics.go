package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational counters for the dashboard client.
type Metrics struct {
	// Request metrics, one per backend endpoint
	ProductInfoRequests atomic.Int64
	AnalyzeRequests     atomic.Int64
	ExportRequests      atomic.Int64

	// Outcome metrics
	RequestsFailed   atomic.Int64
	ServerErrors     atomic.Int64
	TransportErrors  atomic.Int64
	ValidationErrors atomic.Int64
	StaleResponses   atomic.Int64
	Responses2xx     atomic.Int64
	Responses4xx     atomic.Int64
	Responses5xx     atomic.Int64
	BytesDownloaded  atomic.Int64
	ReviewsAnalyzed  atomic.Int64
	ExportsDelivered atomic.Int64
	ChartsRendered   atomic.Int64
	InFlightRequests atomic.Int32

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ObserveStatus counts a response by status class.
func (m *Metrics) ObserveStatus(code int) {
	switch {
	case code >= 200 && code < 300:
		m.Responses2xx.Add(1)
	case code >= 400 && code < 500:
		m.Responses4xx.Add(1)
	case code >= 500:
		m.Responses5xx.Add(1)
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		kind  string
		value int64
	}{
		{"reviewscope_product_info_requests_total", "Requests sent to /get-product-info", "counter", m.ProductInfoRequests.Load()},
		{"reviewscope_analyze_requests_total", "Requests sent to /analyze-reviews", "counter", m.AnalyzeRequests.Load()},
		{"reviewscope_export_requests_total", "Requests sent to /export-csv", "counter", m.ExportRequests.Load()},
		{"reviewscope_requests_failed_total", "Total failed flows", "counter", m.RequestsFailed.Load()},
		{"reviewscope_server_errors_total", "Failures reported by the backend", "counter", m.ServerErrors.Load()},
		{"reviewscope_transport_errors_total", "Network and decode failures", "counter", m.TransportErrors.Load()},
		{"reviewscope_validation_errors_total", "Local precondition failures", "counter", m.ValidationErrors.Load()},
		{"reviewscope_stale_responses_total", "Responses discarded as superseded", "counter", m.StaleResponses.Load()},
		{"reviewscope_responses_2xx_total", "Total 2xx responses", "counter", m.Responses2xx.Load()},
		{"reviewscope_responses_4xx_total", "Total 4xx responses", "counter", m.Responses4xx.Load()},
		{"reviewscope_responses_5xx_total", "Total 5xx responses", "counter", m.Responses5xx.Load()},
		{"reviewscope_bytes_downloaded_total", "Response bytes read", "counter", m.BytesDownloaded.Load()},
		{"reviewscope_reviews_analyzed_total", "Reviews received from analyses", "counter", m.ReviewsAnalyzed.Load()},
		{"reviewscope_exports_delivered_total", "CSV files delivered to sinks", "counter", m.ExportsDelivered.Load()},
		{"reviewscope_charts_rendered_total", "Sentiment charts constructed", "counter", m.ChartsRendered.Load()},
		{"reviewscope_in_flight_requests", "Requests awaiting a response", "gauge", int64(m.InFlightRequests.Load())},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s %s\n", metric.name, metric.kind)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"product_info_requests": m.ProductInfoRequests.Load(),
		"analyze_requests":      m.AnalyzeRequests.Load(),
		"export_requests":       m.ExportRequests.Load(),
		"requests_failed":       m.RequestsFailed.Load(),
		"server_errors":         m.ServerErrors.Load(),
		"transport_errors":      m.TransportErrors.Load(),
		"validation_errors":     m.ValidationErrors.Load(),
		"stale_responses":       m.StaleResponses.Load(),
		"responses_2xx":         m.Responses2xx.Load(),
		"responses_4xx":         m.Responses4xx.Load(),
		"responses_5xx":         m.Responses5xx.Load(),
		"bytes_downloaded":      m.BytesDownloaded.Load(),
		"reviews_analyzed":      m.ReviewsAnalyzed.Load(),
		"exports_delivered":     m.ExportsDelivered.Load(),
		"charts_rendered":       m.ChartsRendered.Load(),
		"in_flight_requests":    int64(m.InFlightRequests.Load()),
	}
}
