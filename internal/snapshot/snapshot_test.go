package snapshot

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/dashboard"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Needs a Chromium download, so it only runs when asked for.
func TestRenderDashboard(t *testing.T) {
	if os.Getenv("REVIEWSCOPE_BROWSER_TESTS") == "" {
		t.Skip("set REVIEWSCOPE_BROWSER_TESTS=1 to run headless browser tests")
	}

	view, err := dashboard.NewHTMLView()
	if err != nil {
		t.Fatalf("NewHTMLView: %v", err)
	}
	view.SetErrorText("product not found")
	view.SetRegionVisible(dashboard.RegionError, true)
	page, err := view.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	cfg := config.DefaultConfig().Snapshot
	cfg.Width, cfg.Height = 800, 600
	cfg.Timeout = time.Minute

	png, err := NewRenderer(cfg, testLogger).Render(context.Background(), page)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("output is not a PNG (%d bytes)", len(png))
	}
}
