package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/IshaanNene/ReviewScope/internal/chart"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/observability"
	"github.com/IshaanNene/ReviewScope/internal/storage"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// ErrSuperseded is returned when a response arrived after a newer request
// of the same flow was issued. The response is discarded.
var ErrSuperseded = errors.New("response superseded by a newer request")

// Backend is the subset of the backend client the controller calls.
type Backend interface {
	GetProductInfo(ctx context.Context, input string) (*types.ProductInfoResponse, error)
	AnalyzeReviews(ctx context.Context, productID string) (*types.AnalyzeResponse, error)
	ExportCSV(ctx context.Context, reviews []types.Review) (*types.ExportResponse, error)
}

type flow int

const (
	flowProductInfo flow = iota
	flowAnalyze
	flowExport
	flowCount
)

// ExportResult describes a delivered CSV file.
type ExportResult struct {
	Filename string
	Location string
	Size     int
}

// Controller holds the session and drives the view through the three
// backend flows.
type Controller struct {
	backend    Backend
	view       View
	sink       storage.Sink
	metrics    *observability.Metrics
	logger     *slog.Logger
	productURL string

	// mu guards session, cat and every view call.
	mu      sync.Mutex
	session types.Session
	cat     *i18n.Catalog
	chart   chart.Slot

	generations [flowCount]atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithSink sets where exported CSV files are delivered.
func WithSink(sink storage.Sink) Option {
	return func(c *Controller) { c.sink = sink }
}

// WithMetrics sets the metrics the controller records into.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithProductURL sets the prefix for similar-product links.
func WithProductURL(prefix string) Option {
	return func(c *Controller) { c.productURL = prefix }
}

// NewController creates a controller with an empty session. Without
// WithSink exports go to an in-memory sink.
func NewController(backend Backend, view View, cat *i18n.Catalog, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		backend:    backend,
		view:       view,
		cat:        cat,
		logger:     logger.With("component", "dashboard"),
		productURL: DefaultProductURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sink == nil {
		c.sink = storage.NewMemorySink()
	}
	if c.metrics == nil {
		c.metrics = observability.NewMetrics(logger)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() types.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Catalog returns the active message catalog.
func (c *Controller) Catalog() *i18n.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cat
}

// SetCatalog switches the locale used for everything rendered afterwards.
func (c *Controller) SetCatalog(cat *i18n.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cat = cat
}

// Sink returns the export destination.
func (c *Controller) Sink() storage.Sink { return c.sink }

// Close destroys the drawn chart.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chart.Dispose()
}

// GetProductInfo looks up rawInput and shows the product info region.
func (c *Controller) GetProductInfo(ctx context.Context, rawInput string) error {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return c.fail(c.validation(i18n.MsgEnterProductURL, types.ErrEmptyInput))
	}

	gen := c.generations[flowProductInfo].Add(1)
	c.begin(ButtonGetInfo, i18n.MsgLoadingProduct, RegionProductInfo, RegionResults)
	defer c.finish(ButtonGetInfo)

	c.logger.Info("fetching product info", "input", input)
	resp, err := c.backend.GetProductInfo(ctx, input)
	if !c.latest(flowProductInfo, gen) {
		return c.discard("product-info", gen)
	}
	if err != nil {
		return c.fail(c.withFallback(err, i18n.MsgProductInfoFailed))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	info := resp.ProductInfo
	c.view.RenderProductInfo(BuildProductView(&info, c.cat, c.productURL))
	c.session.ProductID = resp.ProductID
	c.session.Info = &info
	c.view.SetRegionVisible(RegionProductInfo, true)
	c.view.ScrollIntoView(RegionProductInfo)
	c.logger.Info("product info loaded", "product_id", resp.ProductID)
	return nil
}

// AnalyzeReviews analyzes the reviews of the loaded product and shows the
// counters, summary, chart and review table.
func (c *Controller) AnalyzeReviews(ctx context.Context) error {
	c.mu.Lock()
	productID := c.session.ProductID
	c.mu.Unlock()
	if productID == "" {
		return c.fail(c.validation(i18n.MsgLoadProductFirst, types.ErrNoProduct))
	}

	gen := c.generations[flowAnalyze].Add(1)
	c.begin(ButtonAnalyze, i18n.MsgLoadingAnalysis, RegionResults, RegionReviews)
	defer c.finish(ButtonAnalyze)

	c.logger.Info("analyzing reviews", "product_id", productID)
	resp, err := c.backend.AnalyzeReviews(ctx, productID)
	if !c.latest(flowAnalyze, gen) {
		return c.discard("analyze", gen)
	}
	if err != nil {
		return c.fail(c.withFallback(err, i18n.MsgAnalyzeFailed))
	}
	if err := resp.SentimentStats.Validate(); err != nil {
		c.metrics.TransportErrors.Add(1)
		return c.fail(&types.TransportError{Endpoint: types.EndpointAnalyze, Err: err})
	}

	reviews := append([]types.Review{}, resp.Reviews...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Reviews = reviews
	c.session.Stats = resp.SentimentStats
	c.session.Summary = resp.Summary

	c.view.RenderStats(resp.SentimentStats, resp.Summary)
	c.chart.Replace(chart.NewSentimentSpec(resp.SentimentStats, c.cat), c.view.NewChart)
	c.metrics.ChartsRendered.Add(1)
	c.view.RenderTable(BuildTableRows(reviews, c.cat))
	c.view.SetRegionVisible(RegionResults, true)
	c.view.SetRegionVisible(RegionReviews, true)
	c.view.ScrollIntoView(RegionResults)

	c.logger.Info("reviews analyzed", "product_id", productID, "reviews", len(reviews))
	return nil
}

// ExportCSV asks the backend to serialize the current reviews and delivers
// the file to the sink under the server's filename.
func (c *Controller) ExportCSV(ctx context.Context) (*ExportResult, error) {
	c.mu.Lock()
	reviews := append([]types.Review(nil), c.session.Reviews...)
	c.mu.Unlock()
	if len(reviews) == 0 {
		return nil, c.fail(c.validation(i18n.MsgNoExportData, types.ErrNoReviews))
	}

	gen := c.generations[flowExport].Add(1)
	c.logger.Info("exporting csv", "reviews", len(reviews))
	resp, err := c.backend.ExportCSV(ctx, reviews)
	if !c.latest(flowExport, gen) {
		return nil, c.discard("export", gen)
	}
	if err != nil {
		return nil, c.fail(c.withFallback(err, i18n.MsgExportFailed))
	}

	blob := storage.NewCSVBlob(resp.CSVData, resp.Filename)
	defer blob.Release()

	location, err := c.sink.Deliver(ctx, blob)
	if err != nil {
		var ee *types.ExportError
		if !errors.As(err, &ee) {
			err = &types.ExportError{Sink: c.sink.Name(), Err: err}
		}
		return nil, c.fail(err)
	}

	c.metrics.ExportsDelivered.Add(1)
	c.logger.Info("csv exported", "filename", resp.Filename, "location", location, "bytes", blob.Size())
	return &ExportResult{Filename: resp.Filename, Location: location, Size: blob.Size()}, nil
}

// begin shows the loading region, hides stale output and marks button busy.
func (c *Controller) begin(button Button, loading string, hide ...Region) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetLoadingText(c.cat.T(loading))
	c.view.SetRegionVisible(RegionLoading, true)
	c.view.SetRegionVisible(RegionError, false)
	for _, r := range hide {
		c.view.SetRegionVisible(r, false)
	}
	c.view.SetButtonBusy(button, true)
}

func (c *Controller) finish(button Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetRegionVisible(RegionLoading, false)
	c.view.SetButtonBusy(button, false)
}

func (c *Controller) latest(f flow, gen uint64) bool {
	return c.generations[f].Load() == gen
}

func (c *Controller) discard(name string, gen uint64) error {
	c.metrics.StaleResponses.Add(1)
	c.logger.Debug("discarding stale response", "flow", name, "generation", gen)
	return ErrSuperseded
}

func (c *Controller) validation(key string, sentinel error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &types.ValidationError{Message: c.cat.T(key), Err: sentinel}
}

// withFallback fills in the per-endpoint message when the server gave none.
func (c *Controller) withFallback(err error, key string) error {
	var se *types.ServerError
	if errors.As(err, &se) && se.Message == "" {
		c.mu.Lock()
		msg := c.cat.T(key)
		c.mu.Unlock()
		return &types.ServerError{Endpoint: se.Endpoint, StatusCode: se.StatusCode, Message: msg}
	}
	return err
}

// fail replaces the error region's text with err's message and shows it.
func (c *Controller) fail(err error) error {
	var (
		ve *types.ValidationError
		se *types.ServerError
		te *types.TransportError
	)
	c.metrics.RequestsFailed.Add(1)
	switch {
	case errors.As(err, &ve):
		c.metrics.ValidationErrors.Add(1)
		c.logger.Warn("precondition failed", "error", err)
	case errors.As(err, &se):
		c.logger.Warn("backend rejected request", "endpoint", se.Endpoint, "status", se.StatusCode, "error", se.Message)
	case errors.As(err, &te):
		c.logger.Error("backend unreachable", "endpoint", te.Endpoint, "error", te.Err)
	default:
		c.logger.Error("flow failed", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetErrorText(types.UserMessage(err))
	c.view.SetRegionVisible(RegionError, true)
	return err
}

// String summarizes the session for status output.
func (c *Controller) String() string {
	s := c.Session()
	return fmt.Sprintf("product=%q reviews=%d", s.ProductID, len(s.Reviews))
}
