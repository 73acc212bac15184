// Package backend is the HTTP client for the review sentiment service.
package backend

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/publicsuffix"

	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/observability"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// Client calls the three dashboard endpoints. It never retries.
type Client struct {
	baseURL string
	client  *http.Client
	cfg     *config.BackendConfig
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates a backend client from config. metrics may be nil.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.Backend.MaxIdleConns,
		IdleConnTimeout:     cfg.Backend.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.Backend.TLSInsecure,
		},
		DisableCompression: true, // decompression (including brotli) is done in readBody
	}

	if metrics == nil {
		metrics = observability.NewMetrics(logger)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   cfg.Backend.RequestTimeout, // 0 = no timeout
		},
		cfg:     &cfg.Backend,
		metrics: metrics,
		logger:  logger.With("component", "backend_client"),
	}, nil
}

// GetProductInfo looks up product metadata for a URL or identifier.
func (c *Client) GetProductInfo(ctx context.Context, input string) (*types.ProductInfoResponse, error) {
	c.metrics.ProductInfoRequests.Add(1)
	var out types.ProductInfoResponse
	if err := c.post(ctx, types.EndpointProductInfo, types.ProductInfoRequest{ProductInput: input}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeReviews collects and classifies reviews for a product.
func (c *Client) AnalyzeReviews(ctx context.Context, productID string) (*types.AnalyzeResponse, error) {
	c.metrics.AnalyzeRequests.Add(1)
	var out types.AnalyzeResponse
	if err := c.post(ctx, types.EndpointAnalyze, types.AnalyzeRequest{ProductID: productID}, &out); err != nil {
		return nil, err
	}
	c.metrics.ReviewsAnalyzed.Add(int64(len(out.Reviews)))
	return &out, nil
}

// ExportCSV asks the backend to render reviews as CSV.
func (c *Client) ExportCSV(ctx context.Context, reviews []types.Review) (*types.ExportResponse, error) {
	c.metrics.ExportRequests.Add(1)
	if reviews == nil {
		reviews = []types.Review{}
	}
	var out types.ExportResponse
	if err := c.post(ctx, types.EndpointExport, types.ExportRequest{Reviews: reviews}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// post sends one JSON request and decodes the JSON reply into out.
// Any non-2xx status or a non-empty "error" field is a *types.ServerError;
// network and decode failures are *types.TransportError.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &types.TransportError{Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return &types.TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	c.metrics.InFlightRequests.Add(1)
	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.InFlightRequests.Add(-1)
	if err != nil {
		c.metrics.TransportErrors.Add(1)
		return &types.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.ObserveStatus(resp.StatusCode)

	body, err := c.readBody(resp)
	if err != nil {
		c.metrics.TransportErrors.Add(1)
		return &types.TransportError{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug("backend call complete",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"size", len(body),
		"duration", time.Since(start),
	)

	var envelope types.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.metrics.TransportErrors.Add(1)
		return &types.TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || envelope.Error != "" {
		c.metrics.ServerErrors.Add(1)
		return &types.ServerError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.TransportErrors.Add(1)
		return &types.TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readBody reads a size-limited, decompressed response body.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if c.cfg.MaxBodySize > 0 {
		reader = io.LimitReader(reader, c.cfg.MaxBodySize)
	}

	reader, err := decompressReader(resp, reader)
	if err != nil {
		return nil, fmt.Errorf("decompress response: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.metrics.BytesDownloaded.Add(int64(len(body)))
	return body, nil
}

// decompressReader wraps a reader with the appropriate decompressor.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
