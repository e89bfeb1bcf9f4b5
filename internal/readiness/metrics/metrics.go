package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the readiness module.
type Metrics struct {
	// Fact collection latencies by source
	FactLatency *prometheus.HistogramVec

	// Evaluation outcomes by level
	CheckOutcome *prometheus.CounterVec

	// Overall check latency including fact collection
	CheckLatency prometheus.Histogram

	// Result cache effectiveness
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates a Metrics instance with all readiness module metrics registered.
func New() *Metrics {
	return &Metrics{
		FactLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vayva_readiness_fact_duration_seconds",
			Help:    "Duration of fact collection reads by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}), // source: "store", "plan", "template", "policies", "delivery", "payout"

		CheckOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vayva_readiness_checks_total",
			Help: "Total readiness evaluations by resulting level",
		}, []string{"level"}),

		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vayva_readiness_check_duration_seconds",
			Help:    "Duration of full readiness checks including fact collection",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vayva_readiness_cache_hits_total",
			Help: "Readiness result cache hits",
		}),

		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vayva_readiness_cache_misses_total",
			Help: "Readiness result cache misses",
		}),
	}
}

// ObserveFactLatency records the duration of one fact read.
func (m *Metrics) ObserveFactLatency(source string, d time.Duration) {
	if m != nil {
		m.FactLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records an evaluation outcome.
func (m *Metrics) IncrementOutcome(level string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(level).Inc()
	}
}

// ObserveCheckLatency records the total check duration.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}

// IncrementCacheHit records a readiness cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records a readiness cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
