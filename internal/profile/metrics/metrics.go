// Package metrics exposes Prometheus instrumentation for profile
// calculations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the profile calculation instruments. A nil *Metrics is
// valid and records nothing, keeping tests free of registry setup.
type Metrics struct {
	ProfilesCalculated *prometheus.CounterVec
	ChartsDegraded     prometheus.Counter
	CompatibilityRuns  *prometheus.CounterVec
	CalculationLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ProfilesCalculated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stellium_profiles_calculated_total",
			Help: "Profiles calculated, labeled by sign system and cipher.",
		}, []string{"sign_system", "cipher"}),
		ChartsDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stellium_charts_degraded_total",
			Help: "Profile calculations that returned a degraded astronomical chart.",
		}),
		CompatibilityRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stellium_compatibility_runs_total",
			Help: "Compatibility scores computed, labeled by analysis type.",
		}, []string{"analysis_type"}),
		CalculationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stellium_profile_calculation_seconds",
			Help:    "End to end profile calculation latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) RecordProfile(signSystem, cipher string, degraded bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProfilesCalculated.WithLabelValues(signSystem, cipher).Inc()
	if degraded {
		m.ChartsDegraded.Inc()
	}
	m.CalculationLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordCompatibility(analysisType string) {
	if m == nil {
		return
	}
	m.CompatibilityRuns.WithLabelValues(analysisType).Inc()
}
