// Package api implements the wayfind HTTP API.
//
// The API exposes the same planning pipeline as the CLI plus a persistent
// map store, so that automation fleets can share one set of world maps:
//
//	POST   /v1/plan                 compute a route
//	GET    /v1/maps                 list stored maps
//	PUT    /v1/maps/{name}          create or replace a map
//	GET    /v1/maps/{name}          fetch a map
//	DELETE /v1/maps/{name}          delete a map
//	GET    /v1/maps/{name}/render   render a map as dot or svg
//	GET    /healthz                 liveness and readiness probe
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/routeworks/wayfind/pkg/planner"
	"github.com/routeworks/wayfind/pkg/store"
)

const shutdownTimeout = 5 * time.Second

// Server serves the wayfind HTTP API.
type Server struct {
	Runner *planner.Runner
	Store  store.Store
	Logger *log.Logger
}

// NewServer creates a server. A nil store disables the /v1/maps endpoints
// (plan requests must then carry an inline map). A nil runner gets a
// cache-less default.
func NewServer(runner *planner.Runner, st store.Store, logger *log.Logger) *Server {
	if runner == nil {
		runner = planner.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Runner: runner,
		Store:  st,
		Logger: logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Route("/maps", func(r chi.Router) {
			r.Get("/", s.handleListMaps)
			r.Route("/{name}", func(r chi.Router) {
				r.Put("/", s.handleSaveMap)
				r.Get("/", s.handleGetMap)
				r.Delete("/", s.handleDeleteMap)
				r.Get("/render", s.handleRenderMap)
			})
		})
	})

	return r
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails. Shutdown is graceful with a short deadline.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.Logger.Info("api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs each request with its chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Store != nil {
		if _, err := s.Store.List(r.Context()); err != nil {
			s.Logger.Error("readiness check failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("NOT_READY"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
