package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adlytics"

// Metrics holds all Prometheus instruments for the service. A fresh set
// is registered per process; tests pass their own registry.
type Metrics struct {
	ReportRuns         *prometheus.CounterVec
	NarrativeFallbacks prometheus.Counter
	RecordsFetched     prometheus.Counter
	ModelTrainings     prometheus.Counter
	PredictionsServed  prometheus.Counter
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers all instruments on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_runs_total",
				Help:      "Completed report pipeline runs by narrative source",
			},
			[]string{"narrative_source"},
		),
		NarrativeFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "narrative_fallbacks_total",
				Help:      "Times the external narrative service failed and the rule-based summary was used",
			},
		),
		RecordsFetched: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_fetched_total",
				Help:      "Ad event rows fetched from the record source",
			},
		),
		ModelTrainings: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_trainings_total",
				Help:      "Completed prediction model training runs",
			},
		),
		PredictionsServed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_served_total",
				Help:      "Rows scored by the prediction model",
			},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path", "status"},
		),
	}
}
