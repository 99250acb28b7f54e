package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	enableMetrics bool
}

type Options func(*Server)

// WithMetrics exposes Prometheus metrics on /metrics
func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:        r,
		uc:            uc,
		enableMetrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics)

	r.Get("/healthz", healthHandler)
	if s.enableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Stateless calculations
		r.Post("/fair/loss-exposure", s.lossExposureHandler)
		r.Post("/fair/vulnerability", s.vulnerabilityHandler)
		r.Post("/projection", s.projectionHandler)
		r.Post("/decision", s.decisionHandler)
		r.Post("/compare", s.compareHandler)

		r.Route("/organizations/{orgID}", func(r chi.Router) {
			r.Get("/snapshots", s.listSnapshotsHandler)
			r.Post("/snapshots", s.recordSnapshotHandler)
			r.Get("/snapshots/latest", s.latestSnapshotHandler)

			r.Get("/threats", s.listThreatsHandler)
			r.Post("/threats", s.createThreatHandler)
			r.Get("/threats/{threatID}", s.getThreatHandler)
			r.Put("/threats/{threatID}", s.updateThreatHandler)
			r.Delete("/threats/{threatID}", s.deleteThreatHandler)

			r.Get("/exposure", s.exposureHandler)
			r.Get("/baseline", s.baselineHandler)
		})

		r.Post("/sessions", s.createSessionHandler)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.deleteSessionHandler)
			r.Get("/scenarios", s.listScenariosHandler)
			r.Post("/scenarios", s.addScenarioHandler)
			r.Patch("/scenarios/{scenarioID}", s.updateScenarioHandler)
			r.Delete("/scenarios/{scenarioID}", s.removeScenarioHandler)
			r.Post("/compare", s.compareSessionHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
