package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopadmin/shopadmin/internal/core/cache"
)

// Collector holds the Prometheus metrics of the service. Each collector owns its
// registry so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec
	ReportDuration     *prometheus.HistogramVec
	ReportFailures     *prometheus.CounterVec
}

var _ cache.Observer = (*Collector)(nil)

// NewCollector creates a collector whose metric names are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Cache lookups served from memory, by key family.",
			},
			[]string{"key"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Cache lookups that had to recompute, by key family.",
			},
			[]string{"key"},
		),
		CacheInvalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_invalidations_total",
				Help:      "Keys deleted by the invalidation policy, by key family.",
			},
			[]string{"key"},
		),
		ReportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_build_duration_seconds",
				Help:      "Time spent computing a dashboard report on a cache miss.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		ReportFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_build_failures_total",
				Help:      "Report computations aborted by a repository error.",
			},
			[]string{"report"},
		),
	}

	registry.MustRegister(
		c.CacheHits,
		c.CacheMisses,
		c.CacheInvalidations,
		c.ReportDuration,
		c.ReportFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the registry to expose on /metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Hit(kind cache.Kind) {
	c.CacheHits.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Miss(kind cache.Kind) {
	c.CacheMisses.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Invalidated(kind cache.Kind) {
	c.CacheInvalidations.WithLabelValues(kind.String()).Inc()
}

// ObserveReport records one report computation.
func (c *Collector) ObserveReport(report string, took time.Duration, err error) {
	if err != nil {
		c.ReportFailures.WithLabelValues(report).Inc()
		return
	}
	c.ReportDuration.WithLabelValues(report).Observe(took.Seconds())
}
