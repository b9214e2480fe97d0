package coordinator

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics receives notification of coordinator routing events for
// export to an external monitoring system, the coordinator-side
// counterpart of cache.Metrics (package shardnode's PromMetrics
// adapts the same IvanBrykalov-shardcache Counter-per-event pattern for
// the cache engine; this is the routing layer's version of it).
type Metrics interface {
	ForwardedToShard(addr string)
	StatsPoll(d time.Duration)
}

// NoopMetrics discards every event. It is the Coordinator's default.
type NoopMetrics struct{}

func (NoopMetrics) ForwardedToShard(string) {}
func (NoopMetrics) StatsPoll(time.Duration) {}

var _ Metrics = NoopMetrics{}

// PromMetrics implements Metrics on top of Prometheus: a counter of
// set/get commands forwarded per shard address, and a summary of how
// long a full stats broadcast-and-aggregate round took.
type PromMetrics struct {
	forwarded *prometheus.CounterVec
	statsPoll prometheus.Summary
}

// NewPromMetrics registers the coordinator's counters with reg (nil
// uses prometheus.DefaultRegisterer) and returns the adapter.
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PromMetrics{
		forwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shardkv",
			Subsystem: "coordinator",
			Name:      "forwarded_requests_total",
			Help:      "set/get commands forwarded to a shard, by shard address.",
		}, []string{"shard"}),
		statsPoll: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "shardkv",
			Subsystem: "coordinator",
			Name:      "stats_poll_seconds",
			Help:      "Time to broadcast stats to every shard and aggregate the results.",
		}),
	}
	reg.MustRegister(m.forwarded, m.statsPoll)
	return m
}

func (m *PromMetrics) ForwardedToShard(addr string) { m.forwarded.WithLabelValues(addr).Inc() }
func (m *PromMetrics) StatsPoll(d time.Duration)    { m.statsPoll.Observe(d.Seconds()) }

var _ Metrics = (*PromMetrics)(nil)

// ServeMetrics starts an HTTP server exposing /metrics on addr, on a
// listener separate from the coordinator's TCP command port.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
