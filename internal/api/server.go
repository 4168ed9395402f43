package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hakimelghazi/orderstats/internal/orders"
)

// OrderLister loads the orders recorded for one user.
type OrderLister interface {
	ListByUser(ctx context.Context, userID string) ([]orders.Order, error)
}

type Options struct {
	Logger *zap.Logger
	// Store may be nil, in which case per-user routes answer 503.
	Store          OrderLister
	RequestTimeout time.Duration
	// Registry defaults to a fresh registry when nil.
	Registry *prometheus.Registry
}

type Server struct {
	logger  *zap.Logger
	store   OrderLister
	metrics *metrics
	router  chi.Router
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	s := &Server{
		logger:  logger,
		store:   opts.Store,
		metrics: newMetrics(reg),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(s.metrics.instrument)

	r.Get("/health", s.handleHealth)
	r.Post("/orders/average", s.handleAverage)
	r.Post("/emails/count", s.handleCountEmails)
	r.Get("/users/{id}/average-order-value", s.handleUserAverage)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
