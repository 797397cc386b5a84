package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records case outcomes on a prometheus registry. It is safe for concurrent use.
type Metrics struct {
	casesTotal   *prometheus.CounterVec
	caseDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics registers the runner collectors on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		casesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "dummy_cases_total",
				Help: "Total number of evaluated test cases by result",
			},
			[]string{"result"},
		),
		caseDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dummy_case_duration_seconds",
				Help:    "Time spent evaluating a single test case",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 7),
			},
		),
		registry: registry,
	}

	for _, status := range []Status{StatusPass, StatusFail, StatusSkip} {
		m.casesTotal.WithLabelValues(status.label())
	}

	return m
}

func (m *Metrics) record(result Result) {
	if m == nil {
		return
	}
	m.casesTotal.WithLabelValues(result.Status.label()).Inc()
	if result.Status != StatusSkip {
		m.caseDuration.Observe(result.Elapsed.Seconds())
	}
}

// WriteToTextfile dumps the registry in the node-exporter textfile collector format.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
