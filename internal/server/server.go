// Package server exposes route queries over HTTP.
//
// The server holds one panel graph, loaded at startup, and answers route
// queries against it with the same pipeline the CLI uses.
//
// # Endpoints
//
//	GET  /healthz      liveness, graph size and build info
//	GET  /v1/graph     the loaded graph as JSON (ETag aware)
//	GET  /v1/targets   configured target panels
//	POST /v1/routes    find a route; ?format=svg or ?format=dot draws it
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphbash/pkg/config"
	"github.com/matzehuels/graphbash/pkg/graph"
	"github.com/matzehuels/graphbash/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API over one loaded panel graph.
type Server struct {
	runner *pipeline.Runner
	cfg    *config.Config
	graph  *pipeline.LoadedGraph
	etag   string
	logger *log.Logger
}

// New creates a server answering queries on loaded.
func New(runner *pipeline.Runner, cfg *config.Config, loaded *pipeline.LoadedGraph, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	hash, err := graph.Hash(loaded.Graph, loaded.Source)
	if err != nil {
		return nil, err
	}
	return &Server{
		runner: runner,
		cfg:    cfg,
		graph:  loaded,
		etag:   `"` + hash + `"`,
		logger: logger,
	}, nil
}

// Handler returns the HTTP handler with all API routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/targets", s.handleTargets)
		r.Post("/routes", s.handleRoute)
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

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "nodes", s.graph.Graph.NodeCount())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
