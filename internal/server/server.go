// Package server wires the cloud HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/server/handlers"
	"github.com/iudanet/cloudsync/internal/server/middleware"
)

// Store is the cloud backend served by the API.
type Store interface {
	handlers.CloudStore
	handlers.Pinger
}

// Options configures the HTTP server.
type Options struct {
	Gatherer        prometheus.Gatherer
	Addr            string
	Version         string
	JWT             handlers.JWTConfig
	RateLimit       int
	RateWindow      time.Duration
	ShutdownTimeout time.Duration
}

// Server is the cloud API HTTP server.
type Server struct {
	http    *http.Server
	limiter *middleware.RateLimiter
	logger  *zap.Logger
	opts    Options
}

// New creates the server and its routes.
func New(store Store, opts Options, logger *zap.Logger) *Server {
	s := &Server{
		logger: logger,
		opts:   opts,
	}
	if opts.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(opts.RateLimit, opts.RateWindow, logger)
	}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(store),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) routes(store Store) chi.Router {
	cloudHandler := handlers.NewCloudHandler(store, s.logger)
	healthHandler := handlers.NewHealthHandler(store, s.opts.Version, s.logger)

	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware(s.logger))
	r.Use(middleware.LoggingMiddleware(s.logger, "/api/v1/health", "/metrics"))

	r.Get("/api/v1/health", healthHandler.Health)
	if s.opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cloud", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(s.logger, s.opts.JWT))
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		cloudHandler.Routes(r)
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.limiter != nil {
		defer s.limiter.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("cloud server listening", zap.String("addr", s.opts.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down cloud server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
