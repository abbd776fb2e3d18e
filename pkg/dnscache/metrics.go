package dnscache

import "github.com/prometheus/client_golang/prometheus"

type cacheMetrics struct {
	query   prometheus.Counter
	hit     prometheus.Counter
	stored  prometheus.Counter
	evicted prometheus.Counter
}

func newCacheMetrics() *cacheMetrics {
	return &cacheMetrics{
		query: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dnscache_query_total",
			Help: "Total number of cache lookups.",
		}),
		hit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dnscache_hit_total",
			Help: "Total number of cache hits, positive and negative.",
		}),
		stored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dnscache_stored_total",
			Help: "Total number of entries stored.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dnscache_evicted_total",
			Help: "Total number of entries evicted, by capacity or expiration.",
		}),
	}
}

func (m *cacheMetrics) registerTo(r prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{m.query, m.hit, m.stored, m.evicted} {
		if err := r.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
