// Package server provides the HTTP server for the pantry API.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alchemorsel/pantry/internal/infrastructure/config"
	"github.com/alchemorsel/pantry/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/pantry/internal/infrastructure/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP server exposing the pantry API.
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// New assembles the router and creates the HTTP server.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	pantryHandler *handlers.PantryHandler,
	healthHandler *handlers.HealthHandler,
	auth *middleware.Authenticator,
	registry *prometheus.Registry,
) *Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)
		pantryHandler.Routes(r)
	})

	return &Server{
		config: cfg,
		logger: logger.Named("http-server"),
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
