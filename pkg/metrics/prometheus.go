// Package metrics provides Prometheus metrics for the prediction client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the client core.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Prediction lifecycle
	predictionsSubmitted prometheus.Counter
	predictionsResolved  prometheus.Counter
	predictionsFailed    prometheus.Counter
	predictionLatency    prometheus.Histogram

	// History cache
	historyRefreshes       prometheus.Counter
	historyRefreshFailures prometheus.Counter
	historyEntries         prometheus.Gauge

	// Out-of-order completion guard
	staleResponsesDropped prometheus.Counter

	// Identity
	identitiesCreated prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "heartrisk",
		subsystem:        "client",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.predictionsSubmitted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_submitted_total",
		Help:      "Total prediction requests submitted to the scoring service.",
	})
	m.predictionsResolved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_resolved_total",
		Help:      "Total prediction requests that resolved successfully.",
	})
	m.predictionsFailed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_failed_total",
		Help:      "Total prediction requests that failed.",
	})
	m.predictionLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_seconds",
		Help:      "Latency of scoring service round trips.",
		Buckets:   m.histogramBuckets,
	})

	m.historyRefreshes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_refreshes_total",
		Help:      "Total history cache refresh attempts.",
	})
	m.historyRefreshFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_refresh_failures_total",
		Help:      "History refreshes that failed and left the stale cache in place.",
	})
	m.historyEntries = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_entries",
		Help:      "Number of entries currently held in the history cache.",
	})

	m.staleResponsesDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_responses_dropped_total",
		Help:      "Completions discarded because a newer one was already applied.",
	})

	m.identitiesCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "identities_created_total",
		Help:      "Anonymous identities generated by this client.",
	})
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordPredictionSubmitted counts a new submission.
func RecordPredictionSubmitted() {
	if globalManager.enabled {
		globalManager.predictionsSubmitted.Inc()
	}
}

// RecordPredictionResolved counts a successful resolution and its latency.
func RecordPredictionResolved(latencySeconds float64) {
	if globalManager.enabled {
		globalManager.predictionsResolved.Inc()
		globalManager.predictionLatency.Observe(latencySeconds)
	}
}

// RecordPredictionFailed counts a failed submission.
func RecordPredictionFailed() {
	if globalManager.enabled {
		globalManager.predictionsFailed.Inc()
	}
}

// RecordHistoryRefresh counts a history refresh attempt.
func RecordHistoryRefresh() {
	if globalManager.enabled {
		globalManager.historyRefreshes.Inc()
	}
}

// RecordHistoryRefreshFailure counts a refresh that kept the stale cache.
func RecordHistoryRefreshFailure() {
	if globalManager.enabled {
		globalManager.historyRefreshFailures.Inc()
	}
}

// UpdateHistoryEntries sets the current history cache size.
func UpdateHistoryEntries(n int) {
	if globalManager.enabled {
		globalManager.historyEntries.Set(float64(n))
	}
}

// RecordStaleResponseDropped counts a discarded out-of-order completion.
func RecordStaleResponseDropped() {
	if globalManager.enabled {
		globalManager.staleResponsesDropped.Inc()
	}
}

// RecordIdentityCreated counts a newly generated identity.
func RecordIdentityCreated() {
	if globalManager.enabled {
		globalManager.identitiesCreated.Inc()
	}
}
