// Package reviewscope provides a public SDK for embedding the review
// dashboard as a library.
//
// Example usage:
//
//	d, err := reviewscope.New(
//	    reviewscope.WithBackend("http://localhost:5153"),
//	    reviewscope.WithLocale("en"),
//	)
//	if err != nil { ... }
//	defer d.Close()
//
//	info, err := d.LookupProduct(ctx, "https://www.amazon.com/dp/B000000001")
//	analysis, err := d.Analyze(ctx)
//	file, err := d.Export(ctx)
//	page, err := d.HTML()
package reviewscope

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IshaanNene/ReviewScope/internal/backend"
	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/observability"
	"github.com/IshaanNene/ReviewScope/internal/storage"
	"github.com/IshaanNene/ReviewScope/internal/types"
)

// Re-exported data types.
type (
	Review         = types.Review
	Sentiment      = types.Sentiment
	SentimentStats = types.SentimentStats
	ProductInfo    = types.ProductInfo
	SimilarProduct = types.SimilarProduct
)

// Sentiment values.
const (
	Positive = types.SentimentPositive
	Neutral  = types.SentimentNeutral
	Negative = types.SentimentNegative
)

// Analysis is the result of analyzing a product's reviews.
type Analysis struct {
	Reviews []Review
	Stats   SentimentStats
	Summary string
}

// File is an exported CSV file, BOM included.
type File struct {
	Name     string
	Data     []byte
	Location string
}

// Dashboard is the high-level API for using ReviewScope as a library.
type Dashboard struct {
	cfg       *config.Config
	logger    *slog.Logger
	client    *backend.Client
	view      *dashboard.HTMLView
	ctrl      *dashboard.Controller
	downloads *storage.MemorySink
	archive   storage.Sink
}

// Option configures a Dashboard.
type Option func(*config.Config)

// WithBackend sets the sentiment backend base URL.
func WithBackend(baseURL string) Option {
	return func(c *config.Config) { c.Backend.BaseURL = baseURL }
}

// WithLocale sets the language of rendered text ("ko" or "en").
func WithLocale(locale string) Option {
	return func(c *config.Config) { c.UI.Locale = locale }
}

// WithTimeout bounds each backend request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config.Config) { c.Backend.RequestTimeout = d }
}

// WithOutputDir also writes exported files into dir.
func WithOutputDir(dir string) Option {
	return func(c *config.Config) {
		c.Export.Sinks = []string{"file"}
		c.Export.OutputPath = dir
	}
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// New creates a Dashboard with the given options. Exports are kept in
// memory unless WithOutputDir is given.
func New(opts ...Option) (*Dashboard, error) {
	cfg := config.DefaultConfig()
	cfg.Export.Sinks = nil
	for _, opt := range opts {
		opt(cfg)
	}
	if err := config.ValidateBaseURL(cfg.Backend.BaseURL); err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := i18n.New(cfg.UI.Locale)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics(logger)
	client, err := backend.NewClient(cfg, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}

	view, err := dashboard.NewHTMLView()
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		view:      view,
		downloads: storage.NewMemorySink(),
	}

	var sink storage.Sink = d.downloads
	if len(cfg.Export.Sinks) > 0 {
		archive, err := storage.NewFileSink(cfg.Export.OutputPath, logger)
		if err != nil {
			return nil, err
		}
		d.archive = archive
		sink = storage.NewMultiSink([]storage.Sink{archive, d.downloads}, logger)
	}

	d.ctrl = dashboard.NewController(client, view, cat, logger,
		dashboard.WithSink(sink),
		dashboard.WithMetrics(metrics),
		dashboard.WithProductURL(cfg.UI.ProductURL),
	)
	return d, nil
}

// LookupProduct fetches product info for a URL or identifier.
func (d *Dashboard) LookupProduct(ctx context.Context, input string) (*ProductInfo, error) {
	if err := d.ctrl.GetProductInfo(ctx, input); err != nil {
		return nil, err
	}
	return d.ctrl.Session().Info, nil
}

// ProductID returns the identifier of the loaded product, or "".
func (d *Dashboard) ProductID() string {
	return d.ctrl.Session().ProductID
}

// Analyze collects and classifies the loaded product's reviews.
func (d *Dashboard) Analyze(ctx context.Context) (*Analysis, error) {
	if err := d.ctrl.AnalyzeReviews(ctx); err != nil {
		return nil, err
	}
	s := d.ctrl.Session()
	return &Analysis{Reviews: s.Reviews, Stats: s.Stats, Summary: s.Summary}, nil
}

// Export serializes the analyzed reviews as CSV.
func (d *Dashboard) Export(ctx context.Context) (*File, error) {
	res, err := d.ctrl.ExportCSV(ctx)
	if err != nil {
		return nil, err
	}
	data, _, _ := d.downloads.Get(res.Filename)
	return &File{Name: res.Filename, Data: data, Location: res.Location}, nil
}

// HTML renders the dashboard page in its current state.
func (d *Dashboard) HTML() (string, error) {
	return d.view.HTML()
}

// Close releases the backend client and export sinks.
func (d *Dashboard) Close() error {
	d.ctrl.Close()
	if d.archive != nil {
		d.archive.Close()
	}
	return d.client.Close()
}
