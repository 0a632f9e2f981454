// Package api provides the REST API server for the federation registry.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cartesiandb/federation-registry-server/internal/auth"
	v4 "github.com/cartesiandb/federation-registry-server/internal/api/v4"
	"github.com/cartesiandb/federation-registry-server/internal/service"
	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

// ServerOption configures the federation registry API server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
	resolver    auth.Resolver
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithAuthResolver sets the API key resolver guarding the registry routes.
// Health endpoints stay open regardless.
func WithAuthResolver(resolver auth.Resolver) ServerOption {
	return func(cfg *serverConfig) {
		cfg.resolver = resolver
	}
}

// NewServer creates and configures the HTTP router with the given service and options
func NewServer(svc service.FederationService, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		middlewares: []func(http.Handler) http.Handler{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	// Health check routes stay outside the key gate
	r.Mount("/", v4.HealthRouter(svc))

	registry := v4.Router(svc)
	if cfg.resolver != nil {
		registry = auth.Middleware(cfg.resolver)(registry)
	}
	r.Mount("/api/v4", registry)

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debugf("HTTP %s %s %d %s %s",
			r.Method,
			r.URL.Path,
			ww.Status(),
			time.Since(start),
			middleware.GetReqID(r.Context()),
		)
	})
}
