// Package snapshot renders dashboard HTML to a PNG with a headless browser.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/IshaanNene/ReviewScope/internal/config"
)

// settle is how long the page must be quiet before capture; the chart
// animates in after the Chart.js script loads.
const settle = 800 * time.Millisecond

// Renderer captures screenshots of rendered pages.
type Renderer struct {
	cfg    config.SnapshotConfig
	logger *slog.Logger
}

// NewRenderer creates a renderer using the given viewport settings.
func NewRenderer(cfg config.SnapshotConfig, logger *slog.Logger) *Renderer {
	return &Renderer{
		cfg:    cfg,
		logger: logger.With("component", "snapshot"),
	}
}

// Render loads html into a fresh headless browser and returns a full-page PNG.
func (r *Renderer) Render(ctx context.Context, html string) ([]byte, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	l := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")
	defer l.Cleanup()

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := r.newPage(browser)
	if err != nil {
		return nil, err
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.cfg.Width,
		Height:            r.cfg.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitStable(settle); err != nil {
		r.logger.Warn("page did not settle", "error", err)
	}

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	r.logger.Info("snapshot captured", "bytes", len(png), "stealth", r.cfg.Stealth)
	return png, nil
}

func (r *Renderer) newPage(browser *rod.Browser) (*rod.Page, error) {
	if r.cfg.Stealth {
		page, err := stealth.Page(browser)
		if err != nil {
			return nil, fmt.Errorf("stealth page: %w", err)
		}
		return page, nil
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return page, nil
}
