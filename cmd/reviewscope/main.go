package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/ReviewScope/internal/backend"
	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/observability"
	"github.com/IshaanNene/ReviewScope/internal/storage"
)

var (
	cfgFile    string
	verbose    bool
	backendURL string
	locale     string
	timeout    string
	outputPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reviewscope",
		Short: "ReviewScope, a product review sentiment dashboard",
		Long: `ReviewScope looks up a product, has the sentiment backend collect and
classify its reviews, and shows the results as counters, a chart and a
review table.

Features:
  • Interactive shell and one-shot commands
  • Web dashboard with CSV download
  • Markdown reports with a mermaid pie chart
  • Headless PNG snapshots of the dashboard
  • CSV export to disk and MongoDB
  • Korean and English messages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&backendURL, "backend", "b", "", "sentiment backend base URL")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "", "display language: ko, en")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "backend request timeout (0 = none)")

	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	client  *backend.Client
	cat     *i18n.Catalog
	closers []io.Closer
}

// newApp loads and validates config, then builds the logger and backend client.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := applyCLIOverrides(cfg); err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := setupLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	cat, err := i18n.New(cfg.UI.Locale)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics(logger)
	client, err := backend.NewClient(cfg, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, metrics: metrics, client: client, cat: cat}
	a.closers = append(a.closers, client)
	return a, nil
}

// controller wires a controller that renders into view and exports to sink.
func (a *app) controller(view dashboard.View, sink storage.Sink) *dashboard.Controller {
	return dashboard.NewController(a.client, view, a.cat, a.logger,
		dashboard.WithSink(sink),
		dashboard.WithMetrics(a.metrics),
		dashboard.WithProductURL(a.cfg.UI.ProductURL),
	)
}

// sinks builds the configured export destinations.
func (a *app) sinks() ([]storage.Sink, error) {
	var sinks []storage.Sink
	for _, name := range a.cfg.Export.Sinks {
		var (
			s   storage.Sink
			err error
		)
		switch strings.ToLower(name) {
		case "file":
			s, err = storage.NewFileSink(a.cfg.Export.OutputPath, a.logger)
		case "mongodb":
			m := a.cfg.Export.Mongo
			s, err = storage.NewMongoSink(m.URI, m.Database, m.Collection, a.logger)
		default:
			err = fmt.Errorf("unknown sink %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("create %s sink: %w", name, err)
		}
		sinks = append(sinks, s)
		a.closers = append(a.closers, s)
	}
	return sinks, nil
}

// sink combines the configured destinations into one.
func (a *app) sink() (storage.Sink, error) {
	sinks, err := a.sinks()
	if err != nil {
		return nil, err
	}
	switch len(sinks) {
	case 0:
		return storage.NewMemorySink(), nil
	case 1:
		return sinks[0], nil
	}
	return storage.NewMultiSink(sinks, a.logger), nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	switch cfg.Output {
	case "", "stderr":
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) error {
	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}
	if locale != "" {
		cfg.UI.Locale = locale
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.Backend.RequestTimeout = d
	}
	if outputPath != "" {
		cfg.Export.OutputPath = outputPath
	}
	return nil
}
