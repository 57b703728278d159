package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	SamplesRecorded *prometheus.CounterVec // labels: source={generator,api,manual}
	RecordErrors    prometheus.Counter
	PublishErrors   prometheus.Counter

	ForecastRequests *prometheus.CounterVec // labels: outcome={success,insufficient_data,error}
	ForecastDuration prometheus.Histogram

	IngestRunning    prometheus.Gauge
	DummyModeEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SamplesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal",
			Name:      "samples_recorded_total",
			Help:      "Samples appended to the record store by source.",
		}, []string{"source"}),
		RecordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastal",
			Name:      "record_errors_total",
			Help:      "Failed sample appends.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastal",
			Name:      "publish_errors_total",
			Help:      "Failed fan-out publishes of recorded samples.",
		}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal",
			Name:      "forecast_requests_total",
			Help:      "Forecast computations by outcome.",
		}, []string{"outcome"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coastal",
			Name:      "forecast_duration_seconds",
			Help:      "Duration of a complete forecast computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "coastal",
			Name:      "ingest_running",
			Help:      "1 while the ingest loop is active, 0 after shutdown.",
		}),
		DummyModeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "coastal",
			Name:      "dummy_mode_enabled",
			Help:      "1 when the dummy generator is enabled, 0 when disabled.",
		}),
	}

	prometheus.MustRegister(
		m.SamplesRecorded,
		m.RecordErrors,
		m.PublishErrors,
		m.ForecastRequests,
		m.ForecastDuration,
		m.IngestRunning,
		m.DummyModeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SamplesRecorded:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "coastal", Name: "samples_recorded_total"}, []string{"source"}),
		RecordErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "coastal", Name: "record_errors_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "coastal", Name: "publish_errors_total"}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "coastal", Name: "forecast_requests_total"}, []string{"outcome"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "coastal", Name: "forecast_duration_seconds"}),
		IngestRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "coastal", Name: "ingest_running"}),
		DummyModeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "coastal", Name: "dummy_mode_enabled"}),
	}
}
