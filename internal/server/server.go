package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/gymtracker/internal/metrics"
	"github.com/claude/gymtracker/internal/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *tracker.Service
	log    *slog.Logger
	router chi.Router

	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request and domain metrics in m and serves g on /metrics.
func WithMetrics(m *metrics.Manager, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// New creates a new Server with all routes configured.
func New(svc *tracker.Service, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handle registers an extra handler on the router, e.g. the MCP endpoint.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	if s.metrics != nil {
		s.router.Use(RequestMetrics(s.metrics))
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1/exercises", func(r chi.Router) {
		r.Get("/", s.handleListExercises)
		r.Post("/", s.handleAddExercise)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetExercise)
			r.Get("/history", s.handleHistory)
			r.Get("/best", s.handleBestSet)
			r.Post("/sets", s.handleLogSet)
		})
	})
}
