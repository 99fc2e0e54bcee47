// Package api exposes the design pipeline over HTTP for display and export
// collaborators.
//
// Routes:
//
//	GET  /healthz               liveness and version
//	POST /v1/stacks             sample a stack
//	POST /v1/render/{format}    render a sampled or supplied stack (download)
//	POST /v1/layers             layer polygons for a layout writer
//	POST /v1/design             stack from a feature row via the inference model
//
// Request bodies are JSON [pipeline.Options]. Errors are returned as
// {"code": "...", "message": "..."} with a status derived from the code.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ringstack/pkg/inference"
	"github.com/matzehuels/ringstack/pkg/observability"
	"github.com/matzehuels/ringstack/pkg/pipeline"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
	// Model backs /v1/design. Without one the route answers 501.
	Model inference.Model
	// Timeout bounds each request (default 30s).
	Timeout time.Duration
}

// NewServer returns a server around runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Logger: logger, Timeout: 30 * time.Second}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout()))
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/stacks", s.handleStacks)
		r.Post("/render/{format}", s.handleRender)
		r.Post("/layers", s.handleLayers)
		r.Post("/design", s.handleDesign)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	s.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) timeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return s.Timeout
}

// observe reports every request to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.Logger.Debug("http", "method", r.Method, "route", route, "status", ww.Status(), "duration", time.Since(start))
	})
}
