// Package metrics provides observability for the predict module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the predict module. A nil
// *Metrics is a valid no-op receiver so unit tests can skip registration.
type Metrics struct {
	// Predictions by path ("one", "batch") and outcome ("ok", "error")
	Predictions *prometheus.CounterVec

	// End-to-end single-prediction latency
	PredictLatency prometheus.Histogram

	// Batch sizes seen on the batch path
	BatchSize prometheus.Histogram
}

// New creates a Metrics instance with all predict module metrics registered.
func New() *Metrics {
	return &Metrics{
		Predictions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "houseprice_predictions_total",
			Help: "Total predictions by path and outcome",
		}, []string{"path", "outcome"}),

		PredictLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "houseprice_predict_duration_seconds",
			Help:    "Duration of a single prediction including feature derivation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "houseprice_predict_batch_size",
			Help:    "Number of records per batch prediction request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementPredictions records one prediction outcome.
func (m *Metrics) IncrementPredictions(path, outcome string) {
	if m != nil {
		m.Predictions.WithLabelValues(path, outcome).Inc()
	}
}

// ObservePredictLatency records a single-prediction duration.
func (m *Metrics) ObservePredictLatency(d time.Duration) {
	if m != nil {
		m.PredictLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
