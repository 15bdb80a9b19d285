// internal/monitoring/metrics.go

// Package monitoring exposes run metrics and a small status HTTP server.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments recorded by the pipeline.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal        *prometheus.CounterVec
	FetchAttempts    *prometheus.CounterVec
	RecordsHarvested *prometheus.GaugeVec
	DiffChanges      *prometheus.GaugeVec
	StageDuration    *prometheus.HistogramVec
}

// NewMetrics builds the instrument set on a private registry so test
// instances never collide.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "harvester_runs_total",
			Help: "Completed category runs by final status.",
		}, []string{"category", "status"}),
		FetchAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "harvester_fetch_attempts_total",
			Help: "Source fetch attempts by outcome.",
		}, []string{"category", "outcome"}),
		RecordsHarvested: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "harvester_records",
			Help: "Records in the last persisted dataset.",
		}, []string{"category"}),
		DiffChanges: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "harvester_diff_changes",
			Help: "Dataset changes found by the last run.",
		}, []string{"category", "change"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harvester_stage_duration_seconds",
			Help:    "Time spent per pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"category", "stage"}),
	}
}

// ObserveDiff records the four diff partition sizes for a category.
func (m *Metrics) ObserveDiff(category string, added, removed, updated, unchanged int) {
	m.DiffChanges.WithLabelValues(category, "added").Set(float64(added))
	m.DiffChanges.WithLabelValues(category, "removed").Set(float64(removed))
	m.DiffChanges.WithLabelValues(category, "updated").Set(float64(updated))
	m.DiffChanges.WithLabelValues(category, "unchanged").Set(float64(unchanged))
}
