// Package server exposes the placement pipeline over HTTP.
//
// The API keeps an in-memory workspace of uploaded placements and renders
// them on demand through a shared pipeline runner. Cache keys are scoped
// per workspace entry so two uploads never collide.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mpgalab/placeview/pkg/cache"
	"github.com/mpgalab/placeview/pkg/pipeline"
	"github.com/mpgalab/placeview/pkg/workspace"
)

const shutdownTimeout = 10 * time.Second

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Palette and Width are the render defaults applied when a request
	// does not override them.
	Palette string
	Width   float64
}

// Server serves the placement API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	ws     *workspace.Workspace
	logger *log.Logger
	http   *http.Server
}

// New creates a server around the given pipeline runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Palette == "" {
		cfg.Palette = pipeline.DefaultPalette
	}
	if cfg.Width <= 0 {
		cfg.Width = pipeline.DefaultWidth
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		runner: runner,
		ws:     workspace.New(),
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// router constructs the HTTP route tree.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/placements", func(pr chi.Router) {
			pr.Get("/", s.handleListPlacements)
			pr.Post("/", s.handleAddPlacement)
			pr.Delete("/", s.handleClearPlacements)
			pr.Get("/compare", s.handleCompare)

			pr.Route("/{placementID}", func(item chi.Router) {
				item.Get("/", s.handleGetPlacement)
				item.Delete("/", s.handleRemovePlacement)
				item.Get("/metrics", s.handleMetrics)
				item.Get("/render", s.handleRender)
				item.Get("/model", s.handleModel)
			})
		})
	})

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// requestLogger logs one line per request with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// entryRunner derives a runner for one workspace entry, scoping cache
// keys to the entry so identical uploads stay distinguishable.
func (s *Server) entryRunner(entry *workspace.Entry) *pipeline.Runner {
	return &pipeline.Runner{
		Cache:  s.runner.Cache,
		Keyer:  cache.NewScopedKeyer(s.runner.Keyer, "ws:"+entry.ID),
		Logger: s.runner.Logger,
	}
}
