package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IshaanNene/ReviewScope/internal/config"
	"github.com/IshaanNene/ReviewScope/internal/observability"
	"github.com/IshaanNene/ReviewScope/internal/storage"
)

// Server serves the HTML dashboard and runs flows on form posts.
type Server struct {
	port        int
	ctrl        *Controller
	view        *HTMLView
	downloads   *storage.MemorySink
	metrics     *observability.Metrics
	metricsPath string
	logger      *slog.Logger
	mux         *http.ServeMux
}

// NewServer wires a server around ctrl, which must render into view and
// deliver exports to downloads (directly or through a MultiSink).
func NewServer(cfg *config.Config, ctrl *Controller, view *HTMLView, downloads *storage.MemorySink, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		port:      cfg.Dashboard.Port,
		ctrl:      ctrl,
		view:      view,
		downloads: downloads,
		metrics:   metrics,
		logger:    logger.With("component", "server"),
		mux:       http.NewServeMux(),
	}
	if cfg.Metrics.Enabled {
		s.metricsPath = cfg.Metrics.Path
	}
	s.registerRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/state", s.handleState)

	s.mux.HandleFunc("POST /actions/product-info", s.handleProductInfo)
	s.mux.HandleFunc("POST /actions/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /actions/export", s.handleExport)
	s.mux.HandleFunc("GET /download/{name}", s.handleDownload)

	if s.metricsPath != "" && s.metrics != nil {
		s.mux.Handle("GET "+s.metricsPath, s.metrics)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dashboard starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("dashboard server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("dashboard shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.view.HTML()
	if err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(page))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.ctrl.Session())
}

// Flows outlive the browser request; analysis can take a minute and the
// result must still land in the page.
func (s *Server) flowContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handleProductInfo(w http.ResponseWriter, r *http.Request) {
	input := r.FormValue("product_input")
	s.view.SetInputValue(input)
	if err := s.ctrl.GetProductInfo(s.flowContext(r), input); err != nil {
		s.logger.Debug("product info flow failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.AnalyzeReviews(s.flowContext(r)); err != nil {
		s.logger.Debug("analyze flow failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.ctrl.ExportCSV(s.flowContext(r))
	if err != nil {
		s.logger.Debug("export flow failed", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/download/"+url.PathEscape(res.Filename), http.StatusSeeOther)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	data, contentType, ok := s.downloads.Get(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Write(data)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
