// Package server provides the HTTP API for Aimai.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/aimai/internal/config"
	"github.com/hyperjump/aimai/internal/fuzzy"
	"github.com/hyperjump/aimai/internal/models"
	"github.com/hyperjump/aimai/pkg/metrics"
)

// Server is the HTTP server for the Aimai API. The engine is swapped
// atomically on dataset reload; requests in flight keep searching the
// snapshot they started with.
type Server struct {
	mu          sync.RWMutex
	engine      *fuzzy.Engine[models.Record]
	recordCount int

	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	server  *http.Server
}

// NewServer creates a server with the given dependencies. A nil metrics
// value disables instrumentation.
func NewServer(engine *fuzzy.Engine[models.Record], cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: m,
	}
	if engine != nil {
		s.SetEngine(engine)
	}
	return s
}

// SetEngine replaces the active engine. Used on startup and after dataset
// reloads.
func (s *Server) SetEngine(engine *fuzzy.Engine[models.Record]) {
	s.mu.Lock()
	s.engine = engine
	s.recordCount = engine.Len()
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.RecordsLoaded.Set(float64(engine.Len()))
	}
}

// searcher returns a request-scoped searcher over the current engine
// snapshot, or nil when no dataset is loaded yet.
func (s *Server) searcher() *fuzzy.Searcher[models.Record] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil
	}
	return s.engine.NewSearcher()
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	if s.metrics != nil {
		r.Use(s.instrument)
	}

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/search/batch", s.handleBatchSearch)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
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

// instrument records request counts and latency per route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}
