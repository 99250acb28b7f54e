package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal counts requests by route pattern and status
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskquant_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// httpRequestDuration tracks request latency
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riskquant_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"method", "route"})

	// scenarioEvaluations counts evaluated what-if scenarios by entry point
	scenarioEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskquant_scenario_evaluations_total",
		Help: "Total what-if scenarios evaluated by comparison source",
	}, []string{"source"})
)

func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Route pattern is resolved only after routing, and keeps label
		// cardinality independent of IDs in the path
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
