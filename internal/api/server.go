// Package api exposes the storefront over HTTP: a huma-described JSON API on a
// chi router, the server-sent event stream, and Prometheus metrics.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/digitalbookstore/storefront/internal/metrics"
	"github.com/digitalbookstore/storefront/internal/ratelimit"
	"github.com/digitalbookstore/storefront/internal/sse"
	"github.com/digitalbookstore/storefront/internal/storefront"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Options configures the optional parts of the server. Zero values disable
// them: no limiter means no rate limiting, no SSE handler means no event
// stream.
type Options struct {
	AllowedOrigins []string
	Limiter        *ratelimit.KeyedRateLimiter
	Metrics        *metrics.Metrics
	SSEHandler     *sse.Handler
	SSEManager     *sse.Manager
}

// Server is the HTTP API server.
type Server struct {
	storefront *storefront.Storefront
	router     chi.Router
	api        huma.API
	opts       Options
	logger     *slog.Logger
}

// NewServer creates a new API server with all routes registered.
func NewServer(sf *storefront.Storefront, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		storefront: sf,
		router:     router,
		opts:       opts,
		logger:     logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Digital Bookstore API", Version)
	humaConfig.Info.Description = "Catalog browsing and shopping cart for the digital bookstore."
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the underlying huma API.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger, s.opts.Metrics))
	s.router.Use(middleware.Recoverer)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if s.opts.Limiter != nil {
		s.router.Use(RateLimitMiddleware(s.opts.Limiter, s.opts.Metrics, s.logger))
	}
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerBrowseRoutes()
	s.registerCartRoutes()

	if s.opts.SSEHandler != nil {
		s.router.Get("/api/v1/events", s.opts.SSEHandler.ServeHTTP)
	}
	if s.opts.Metrics != nil {
		s.router.Handle("/metrics", s.opts.Metrics.Handler())
	}
}
