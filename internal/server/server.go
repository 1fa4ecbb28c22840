// Package server exposes rendering and history over HTTP.
//
// The API is a thin JSON layer over the same Runner and history Store the
// CLI uses, so both surfaces share validation, caching, and limits.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/snapkit/snapcard/pkg/history"
	"github.com/snapkit/snapcard/pkg/snap"
)

// Server is the HTTP API server.
type Server struct {
	runner  *snap.Runner
	store   history.Store
	logger  *log.Logger
	httpSrv *http.Server

	// renderMu serializes render calls: a Runner's drawing surface is
	// single-use and handlers run concurrently.
	renderMu sync.Mutex
}

// Config holds server construction parameters.
type Config struct {
	Addr   string
	Runner *snap.Runner
	Store  history.Store
	Logger *log.Logger
}

// New creates a server with its routes mounted.
func New(cfg Config) *Server {
	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/render", s.handleRender)
	r.Route("/api/history", func(r chi.Router) {
		r.Get("/", s.handleHistoryList)
		r.Post("/", s.handleHistoryAdd)
		r.Get("/{id}", s.handleHistoryGet)
		r.Delete("/{id}", s.handleHistoryDelete)
	})

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route tree, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully with a deadline.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.httpSrv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", s.httpSrv.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("server shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}

// logRequests logs one line per request after it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
