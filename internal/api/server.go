// Package api provides the HTTP API server and handlers for the wisher application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/birthdaywisher/wisher-server/internal/ratelimit"
	"github.com/birthdaywisher/wisher-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	birthdayService *service.BirthdayService
	contactService  *service.ContactService
	sseHandler      http.Handler
	writeLimiter    *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(birthdayService *service.BirthdayService, contactService *service.ContactService, sseHandler http.Handler, logger *slog.Logger) *Server {
	s := &Server{
		birthdayService: birthdayService,
		contactService:  contactService,
		sseHandler:      sseHandler,
		// 20 writes per minute per client IP with a small burst.
		writeLimiter: ratelimit.New(20.0/60.0, 5),
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources.
func (s *Server) Close() {
	s.writeLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		MaxAge:           int((10 * time.Minute).Seconds()),
		AllowCredentials: false,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/birthday", func(r chi.Router) {
			r.Get("/", s.handleGetBirthday)
			r.Get("/autocomplete", s.handleAutocomplete)
			r.Get("/upcoming", s.handleUpcoming)
			r.With(s.rateLimitWrites).Post("/add", s.handleAddBirthday)

			r.Route("/guestbook", func(r chi.Router) {
				r.Get("/", s.handleGetGuestbook)
				r.With(s.rateLimitWrites).Post("/", s.handlePostGuestbook)
				r.Handle("/stream", s.sseHandler)
			})
		})

		r.With(s.rateLimitWrites).Post("/contact", s.handleContact)
	})
}

// rateLimitWrites applies the per-IP write limiter.
func (s *Server) rateLimitWrites(next http.Handler) http.Handler {
	return RateLimitMiddleware(s.writeLimiter, s.logger)(next)
}
