package ui

import (
	"net/http"

	"heartbi/internal"
	"heartbi/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewOpsRouter serves pprof under /debug and Prometheus metrics under
// /metrics. It is meant for a separate, non-public port.
func NewOpsRouter(m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", m.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// StartOps runs the ops router on addr until it fails
func StartOps(addr string, m *metrics.Metrics, logger *internal.Logger) error {
	logger = logger.With("Ops")
	logger.Info("ops server starting on %s", addr)
	logger.Info("view profiles: go tool pprof -http=:8081 http://localhost%s/debug/pprof/profile?seconds=30", addr)
	return http.ListenAndServe(addr, NewOpsRouter(m))
}
