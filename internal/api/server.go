// Package api provides the HTTP API server and handlers for the Encore
// song-request application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/arohamusic/encore-server/internal/config"
	"github.com/arohamusic/encore-server/internal/lookup"
	"github.com/arohamusic/encore-server/internal/ratelimit"
	"github.com/arohamusic/encore-server/internal/service"
	"github.com/arohamusic/encore-server/internal/sse"
	"github.com/arohamusic/encore-server/internal/store"
)

// Services bundles the business services used by the HTTP handlers.
type Services struct {
	Auth     *service.AuthService
	Requests *service.RequestService
	Live     *service.LiveService
	Lookup   *lookup.Client
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	sseHandler *sse.Handler
	sseManager *sse.Manager
	router     *chi.Mux
	api        huma.API
	throttle   *ratelimit.KeyedRateLimiter
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, store *store.Store, services *Services, sseHandler *sse.Handler, sseManager *sse.Manager, logger *slog.Logger) *Server {
	s := &Server{
		store:      store,
		services:   services,
		sseHandler: sseHandler,
		sseManager: sseManager,
		router:     chi.NewRouter(),
		throttle:   ratelimit.New(cfg.Throttle.RPS, cfg.Throttle.Burst),
		logger:     logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(clientIPMiddleware)
	s.router.Use(RateLimitMiddleware(s.throttle, logger))

	humaConfig := huma.DefaultConfig("Encore API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerRequestRoutes()
	s.registerLiveRoutes()
	s.registerSearchRoutes()

	// The SSE stream bypasses huma: it is a long-lived text/event-stream
	// response, not a JSON envelope.
	s.router.Get("/api/v1/stream", s.sseHandler.ServeHTTP)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources. The HTTP listener itself is
// owned by the caller.
func (s *Server) Close() {
	s.throttle.Stop()
}
