package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/dashboard"
	"github.com/IshaanNene/ReviewScope/internal/i18n"
	"github.com/IshaanNene/ReviewScope/internal/report"
)

// REPL provides an interactive command-line interface for the dashboard.
type REPL struct {
	cfg    *config.Config
	ctrl   *dashboard.Controller
	view   *dashboard.TerminalView
	logger *slog.Logger
	reader *bufio.Reader
	out    io.Writer
}

// New creates a REPL reading commands from in. The controller must render
// into view, which should write to out.
func New(cfg *config.Config, ctrl *dashboard.Controller, view *dashboard.TerminalView, in io.Reader, out io.Writer, logger *slog.Logger) *REPL {
	return &REPL{
		cfg:    cfg,
		ctrl:   ctrl,
		view:   view,
		logger: logger.With("component", "repl"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Start runs the loop until exit, end of input or ctx is cancelled.
func (r *REPL) Start(ctx context.Context) {
	r.println("🔎 ReviewScope Interactive Shell")
	r.println("   Paste a product URL to look it up. Type 'help' for commands, 'exit' to quit.")
	r.println()

	for ctx.Err() == nil {
		fmt.Fprint(r.out, "reviewscope> ")
		line, err := r.reader.ReadString('\n')
		if err != nil && line == "" {
			r.println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help", "?":
			r.printHelp()
		case "exit", "quit", "q":
			r.println("Goodbye! 👋")
			return
		case "info":
			r.cmdInfo(ctx, strings.Join(args, " "))
		case "analyze":
			r.cmdAnalyze(ctx)
		case "export":
			r.cmdExport(ctx)
		case "report":
			r.cmdReport(args)
		case "reviews":
			r.cmdReviews()
		case "status":
			r.cmdStatus()
		case "config":
			r.cmdConfig()
		case "set":
			r.cmdSet(args)
		case "clear":
			fmt.Fprint(r.out, "\033[H\033[2J")
		default:
			// Anything else is product input, as if typed into the search box.
			r.cmdInfo(ctx, line)
		}
	}
}

func (r *REPL) printHelp() {
	r.println(`
Available Commands:
  <url or ASIN>         Look up a product (same as info)
  info <url>            Look up a product
  analyze               Collect and analyze the product's reviews
  export                Export the analyzed reviews as CSV
  report [path]         Write a Markdown report (default: stdout)
  reviews               Print the review table again

  status                Show the current session
  config                Show current configuration
  set locale <ko|en>    Switch the display language

  clear                 Clear the screen
  help                  Show this help
  exit                  Exit the shell`)
}

// Flow errors are already shown by the view; they are only logged here.

func (r *REPL) cmdInfo(ctx context.Context, input string) {
	if err := r.ctrl.GetProductInfo(ctx, input); err != nil {
		r.logger.Debug("info failed", "error", err)
	}
}

func (r *REPL) cmdAnalyze(ctx context.Context) {
	if err := r.ctrl.AnalyzeReviews(ctx); err != nil {
		r.logger.Debug("analyze failed", "error", err)
	}
}

func (r *REPL) cmdExport(ctx context.Context) {
	res, err := r.ctrl.ExportCSV(ctx)
	if err != nil {
		r.logger.Debug("export failed", "error", err)
		return
	}
	r.printf("💾 %s (%d bytes)\n", r.ctrl.Catalog().T(i18n.MsgExported, res.Location), res.Size)
}

func (r *REPL) cmdReport(args []string) {
	session := r.ctrl.Session()
	if !session.HasProduct() {
		r.printf("❌ %s\n", r.ctrl.Catalog().T(i18n.MsgLoadProductFirst))
		return
	}

	out := r.out
	if len(args) > 0 {
		path := args[0]
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			r.printf("Error: %v\n", err)
			return
		}
		f, err := os.Create(path)
		if err != nil {
			r.printf("Error: %v\n", err)
			return
		}
		defer f.Close()
		out = f
	}

	n, err := report.NewMarkdownWriter(out, r.ctrl.Catalog(), r.cfg.UI.ProductURL).Write(session)
	if err != nil {
		r.printf("Error: %v\n", err)
		return
	}
	if len(args) > 0 {
		r.printf("📝 Report written to %s (%d bytes)\n", args[0], n)
	}
}

func (r *REPL) cmdReviews() {
	session := r.ctrl.Session()
	if !session.HasReviews() {
		r.printf("❌ %s\n", r.ctrl.Catalog().T(i18n.MsgNoExportData))
		return
	}
	r.view.PrintTable(dashboard.BuildTableRows(session.Reviews, r.ctrl.Catalog()))
}

func (r *REPL) cmdStatus() {
	s := r.ctrl.Session()
	if !s.HasProduct() {
		r.println("No product loaded.")
		return
	}
	r.printf("  Product:   %s\n", s.ProductID)
	r.printf("  Reviews:   %d\n", len(s.Reviews))
	if s.HasReviews() {
		r.printf("  Sentiment: +%d / %d / -%d\n", s.Stats.Positive, s.Stats.Neutral, s.Stats.Negative)
	}
	r.printf("  Locale:    %s\n", r.ctrl.Catalog().Locale())
}

func (r *REPL) cmdConfig() {
	timeout := "none"
	if r.cfg.Backend.RequestTimeout > 0 {
		timeout = r.cfg.Backend.RequestTimeout.String()
	}
	r.printf("  Backend:   %s\n", r.cfg.Backend.BaseURL)
	r.printf("  Timeout:   %s\n", timeout)
	r.printf("  Locale:    %s\n", r.ctrl.Catalog().Locale())
	r.printf("  Sinks:     %s\n", strings.Join(r.cfg.Export.Sinks, ", "))
	r.printf("  Output:    %s\n", r.cfg.Export.OutputPath)
}

func (r *REPL) cmdSet(args []string) {
	if len(args) < 2 {
		r.println("Usage: set <key> <value>")
		r.println("  Keys: locale")
		return
	}

	key := args[0]
	val := args[1]

	switch key {
	case "locale":
		cat, err := i18n.New(val)
		if err != nil {
			r.printf("  %v\n", err)
			return
		}
		r.ctrl.SetCatalog(cat)
		r.cfg.UI.Locale = val
		r.printf("  Locale set to %s\n", val)
	default:
		r.printf("  Unknown key: %s\n", key)
	}
}

func (r *REPL) println(a ...any) { fmt.Fprintln(r.out, a...) }

func (r *REPL) printf(format string, a ...any) { fmt.Fprintf(r.out, format, a...) }
