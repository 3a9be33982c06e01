// Package server provides the HTTP API for embedserve.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/embedserve/internal/config"
	"github.com/hyperjump/embedserve/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Embedder is the part of the embedding service the handlers use.
type Embedder interface {
	Embed(ctx context.Context, text string) (models.Vector, error)
	ModelID() string
	Dimensions() int
}

// Server is the HTTP server for the embedding API.
type Server struct {
	embedder Embedder
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(embedder Embedder, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		embedder: embedder,
		config:   cfg,
		logger:   logger,
	}
}

// Handler builds the router with all middleware and routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}
	r.Use(middleware.Compress(5))

	routes := func(r chi.Router) {
		r.Post("/embed", s.handleEmbed)
		r.Get("/health", s.handleHealth)
	}
	if base := strings.TrimRight(s.config.BasePath, "/"); base != "" {
		r.Route(base, routes)
	} else {
		routes(r)
	}

	return otelhttp.NewHandler(r, "embedserve")
}

// Start starts the HTTP server and blocks until it stops. A clean Stop returns nil.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr), zap.String("base_path", s.config.BasePath))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
