// Package server implements the HTTP API for lattice analysis.
//
// The API accepts lattice text in request bodies and returns analysis
// results as JSON. It shares the pipeline Runner with the CLI, so both
// entry points behave identically and share the cache.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/latt-dev/latt/pkg/config"
	"github.com/latt-dev/latt/pkg/pipeline"
)

// maxBodyBytes bounds lattice uploads. Lattice files are small text
// documents; anything past this is rejected as invalid input.
const maxBodyBytes = 16 << 20

// Server wires the analysis pipeline to an HTTP router.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
}

// New creates a server around an existing runner.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/render/dot", s.handleRenderDOT)
	})
	return r
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
