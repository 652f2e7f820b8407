package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Validation outcomes by category and status
	Outcomes *prometheus.CounterVec

	// Most recent per-category accuracy
	Accuracy *prometheus.GaugeVec

	// Duration of full comprehensive validation runs
	BatteryLatency prometheus.Histogram
}

// New creates a new Metrics instance with all validation metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stellium_validation_outcomes_total",
			Help: "Total validation outcomes by category and status",
		}, []string{"category", "status"}),

		Accuracy: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stellium_validation_accuracy",
			Help: "Most recent validation accuracy per category (0-100)",
		}, []string{"category"}),

		BatteryLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stellium_validation_battery_duration_seconds",
			Help:    "Duration of comprehensive validation runs",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// RecordOutcome records one validation result.
func (m *Metrics) RecordOutcome(category, status string, accuracy float64) {
	if m != nil {
		m.Outcomes.WithLabelValues(category, status).Inc()
		m.Accuracy.WithLabelValues(category).Set(accuracy)
	}
}

// ObserveBatteryLatency records the duration of a comprehensive run.
func (m *Metrics) ObserveBatteryLatency(d time.Duration) {
	if m != nil {
		m.BatteryLatency.Observe(d.Seconds())
	}
}
