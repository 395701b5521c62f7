// Package server provides the HTTP API for devicematch.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/activlink/devicematch/internal/catalog"
	"github.com/activlink/devicematch/internal/config"
	"github.com/activlink/devicematch/internal/match"
	"github.com/activlink/devicematch/internal/titles"
	"go.uber.org/zap"
)

// Server is the HTTP server for the devicematch API.
type Server struct {
	matcher  *match.Matcher
	resolver *titles.Resolver
	catalog  *catalog.Catalog
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	matcher *match.Matcher,
	resolver *titles.Resolver,
	cat *catalog.Catalog,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		matcher:  matcher,
		resolver: resolver,
		catalog:  cat,
		config:   cfg,
		logger:   logger,
	}
}

// router builds the chi router. Match, categories and status require the
// bearer token; health and the locale registry do not.
func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(s.requestLogger)

	r.Group(func(r chi.Router) {
		r.Use(s.bearerAuth)
		r.Post("/api/v1/match", s.handleMatch)
		r.Get("/api/v1/categories", s.handleCategories)
		r.Get("/api/v1/status", s.handleStatus)
	})
	r.Get("/api/v1/locales", s.handleLocales)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
