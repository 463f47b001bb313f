// Package rest exposes the trip planner over HTTP.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/andrescamacho/haulplan/pkg/logger"
)

// ServerConfig carries the listener settings the server needs. The
// infrastructure config layer maps its file/env values onto this struct so
// the adapter stays independent of how configuration is loaded.
type ServerConfig struct {
	Host            string
	Port            int
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server wraps the http.Server lifecycle.
type Server struct {
	httpServer *http.Server
	shutdown   time.Duration
	log        *logger.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(cfg ServerConfig, handler *Handler, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      NewRouter(handler, cfg.CORSOrigins, log),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		shutdown: cfg.ShutdownTimeout,
		log:      log,
	}
}

// NewRouter assembles the chi router with middleware and routes. The plan and
// health endpoints are mounted both at the root and under /api so the server
// works behind prefix-stripping and prefix-preserving proxies alike.
func NewRouter(handler *Handler, corsOrigins []string, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(RequestMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Post("/plan", handler.PlanTrip)
	r.Get("/health", handler.Health)
	r.Route("/api", func(api chi.Router) {
		api.Post("/plan", handler.PlanTrip)
		api.Get("/health", handler.Health)
	})

	return r
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.log.Infow("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down. It waits at
// most the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Infow("http server shutting down")
	if s.shutdown > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdown)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
