// Package observability wires Prometheus instrumentation for the analysis
// pipeline and the weather path.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for FieldScout.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec // labels: outcome={ok,invalid_image,error}
	AnalysisDuration prometheus.Histogram

	WeatherFallbacks prometheus.Counter
	AlertsEmitted    prometheus.Counter

	HistoryEntries prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldscout",
			Name:      "analyses_total",
			Help:      "Total image analyses by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fieldscout",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete decode-index-classify-persist cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		WeatherFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fieldscout",
			Name:      "weather_fallbacks_total",
			Help:      "Forecast requests served by the simulator after an upstream failure.",
		}),
		AlertsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fieldscout",
			Name:      "alerts_emitted_total",
			Help:      "Predictive alerts returned to callers (after the response cap).",
		}),
		HistoryEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fieldscout",
			Name:      "history_entries",
			Help:      "Current length of the persisted analysis history.",
		}),
	}

	prometheus.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.WeatherFallbacks,
		m.AlertsEmitted,
		m.HistoryEntries,
	)
	return m
}
