package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adlytics/internal/core/port"
	"adlytics/internal/metrics"
)

// Handler is the inbound HTTP adapter. It holds the report and predict
// usecases, a logger for structured logging and the metrics set; routes
// are registered on a chi.Router.
type Handler struct {
	reports  port.ReportUseCase
	predicts port.PredictUseCase
	logger   *slog.Logger
	metrics  *metrics.Metrics
	router   chi.Router
}

// NewHandler creates a handler with all routes configured. The prometheus
// gatherer backs the /metrics endpoint.
func NewHandler(reports port.ReportUseCase, predicts port.PredictUseCase, logger *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Handler {
	h := &Handler{reports: reports, predicts: predicts, logger: logger, metrics: m}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(h.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/report", h.handleBuildReport)
		r.Get("/stats/overview", h.handleStatsOverview)
		r.Get("/stats/daily", h.handleStatsDaily)
		r.Post("/model/train", h.handleModelTrain)
		r.Post("/model/predict", h.handleModelPredict)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// observe records request latency per route pattern and logs each call.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		h.metrics.HTTPDuration.
			WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).
			Observe(elapsed.Seconds())
		h.logger.Info("http",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("latency", elapsed))
	})
}
