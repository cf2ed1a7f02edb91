package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// EngineMetrics tracks orchestrator stage outcomes.
type EngineMetrics struct {
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	stageOutcomes  *prometheus.CounterVec
	fallbacks      prometheus.Counter
	requestSeconds prometheus.Histogram
}

func NewEngineMetrics(logger *logrus.Logger) *EngineMetrics {
	m := &EngineMetrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Recommendation requests served from the cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Recommendation requests that missed the cache",
		}),
		stageOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recommendation_stage_outcomes_total",
			Help: "Per-stage outcomes of the recommendation cascade",
		}, []string{"stage", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Requests that ended in the popularity fallback",
		}),
		requestSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recommendation_request_duration_seconds",
			Help:    "End-to-end recommendation generation latency",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{
		m.cacheHits, m.cacheMisses, m.stageOutcomes, m.fallbacks, m.requestSeconds,
	} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				logger.WithError(err).Warn("Failed to register engine metric")
			}
		}
	}

	return m
}

func (m *EngineMetrics) CacheHit()  { m.cacheHits.Inc() }
func (m *EngineMetrics) CacheMiss() { m.cacheMisses.Inc() }
func (m *EngineMetrics) Fallback()  { m.fallbacks.Inc() }

func (m *EngineMetrics) Stage(stage, outcome string) {
	m.stageOutcomes.WithLabelValues(stage, outcome).Inc()
}

func (m *EngineMetrics) ObserveRequest(seconds float64) {
	m.requestSeconds.Observe(seconds)
}
