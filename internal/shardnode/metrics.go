package shardnode

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parthgangar/shardkv/internal/cache"
)

// PromMetrics implements cache.Metrics on top of Prometheus counters,
// adapted from IvanBrykalov-shardcache's metrics/prom.Adapter to this
// engine's narrower Hit/Miss/EvictToDisk/EvictLost event set.
type PromMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictDisk prometheus.Counter
	evictLost prometheus.Counter
}

// NewPromMetrics registers the shard's counters with reg (nil uses
// prometheus.DefaultRegisterer) and returns the adapter.
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PromMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache hits, memory or disk tier.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache misses across both tiers.",
		}),
		evictDisk: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "cache",
			Name:      "evictions_to_disk_total",
			Help:      "Entries evicted from memory and written to the disk tier.",
		}),
		evictLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "cache",
			Name:      "evictions_lost_total",
			Help:      "Entries evicted from memory whose disk write failed.",
		}),
	}
	reg.MustRegister(m.hits, m.misses, m.evictDisk, m.evictLost)
	return m
}

func (m *PromMetrics) Hit()         { m.hits.Inc() }
func (m *PromMetrics) Miss()        { m.misses.Inc() }
func (m *PromMetrics) EvictToDisk() { m.evictDisk.Inc() }
func (m *PromMetrics) EvictLost()   { m.evictLost.Inc() }

var _ cache.Metrics = (*PromMetrics)(nil)

// ServeMetrics starts an HTTP server exposing /metrics on addr. It's
// meant to run in its own goroutine, on a listener separate from the
// shard's TCP command port, since the spec's wire protocol is raw TCP
// JSON frames, not HTTP.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
