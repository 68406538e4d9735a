// Package metrics provides Prometheus metrics for the rent-to-own modeling
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Computation metrics
	schedulesComputed        prometheus.Counter
	affordabilityEvaluations *prometheus.CounterVec
	trendSummaries           prometheus.Counter
	riskAssessments          *prometheus.CounterVec

	// Ranking metrics
	rankRequests        prometheus.Counter
	candidatesEvaluated prometheus.Counter
	candidatesSkipped   prometheus.Counter
	rankDuration        prometheus.Histogram

	// Cache and store metrics
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	segmentsTracked prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rentown",
		subsystem:        "engine",
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

// Registry returns the registry the global manager records into, for
// exposition by a caller that serves metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.schedulesComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedules_computed_total",
		Help:      "Total number of amortization schedules computed",
	})

	m.affordabilityEvaluations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "affordability_evaluations_total",
			Help:      "Total number of affordability evaluations by verdict",
		},
		[]string{"verdict"},
	)

	m.trendSummaries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trend_summaries_total",
		Help:      "Total number of trend summaries computed (cache misses included)",
	})

	m.riskAssessments = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "risk_assessments_total",
			Help:      "Total number of risk assessments by tier",
		},
		[]string{"tier"},
	)

	m.rankRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_requests_total",
		Help:      "Total number of batch ranking requests",
	})

	m.candidatesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_evaluated_total",
		Help:      "Total number of candidates successfully evaluated",
	})

	m.candidatesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_skipped_total",
		Help:      "Total number of candidates excluded from rankings",
	})

	m.rankDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_duration_seconds",
		Help:      "Histogram of batch ranking duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trend_cache_hits_total",
		Help:      "Total number of trend cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trend_cache_misses_total",
		Help:      "Total number of trend cache misses",
	})

	m.segmentsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "segments_tracked",
		Help:      "Number of market segments with stored price history",
	})
}

// Package-level recording functions against the global manager.

func RecordScheduleComputed() {
	if globalManager.enabled {
		globalManager.schedulesComputed.Inc()
	}
}

func RecordAffordabilityEvaluation(verdict string) {
	if globalManager.enabled {
		globalManager.affordabilityEvaluations.WithLabelValues(verdict).Inc()
	}
}

func RecordTrendSummary() {
	if globalManager.enabled {
		globalManager.trendSummaries.Inc()
	}
}

func RecordRiskAssessment(tier string) {
	if globalManager.enabled {
		globalManager.riskAssessments.WithLabelValues(tier).Inc()
	}
}

func RecordRankRequest() {
	if globalManager.enabled {
		globalManager.rankRequests.Inc()
	}
}

func RecordCandidateEvaluated() {
	if globalManager.enabled {
		globalManager.candidatesEvaluated.Inc()
	}
}

func RecordCandidateSkipped() {
	if globalManager.enabled {
		globalManager.candidatesSkipped.Inc()
	}
}

func ObserveRankDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.rankDuration.Observe(seconds)
	}
}

func RecordCacheHit() {
	if globalManager.enabled {
		globalManager.cacheHits.Inc()
	}
}

func RecordCacheMiss() {
	if globalManager.enabled {
		globalManager.cacheMisses.Inc()
	}
}

func UpdateSegmentsTracked(n int) {
	if globalManager.enabled {
		globalManager.segmentsTracked.Set(float64(n))
	}
}
