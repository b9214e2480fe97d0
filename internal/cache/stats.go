package cache

import (
	"sync/atomic"
	"time"
)

// Stats holds the cache engine's monotone counters (hit, miss, read
// request and write request counts) and accumulating durations. The
// wire-visible `stats` JSON object carries hit_rate, read_requests,
// write_requests, cache_read_time and disk_read_time; HitCount and
// MissCount are not serialized.
//
// Fields are exported with JSON tags matching the original Python
// service's `PerformanceStatistics.get_statistics()` output so a shard
// node's stats response is byte-for-byte compatible with the legacy
// wire shape.
type Stats struct {
	HitRate       float64 `json:"hit_rate"`
	ReadRequests  uint64  `json:"read_requests"`
	WriteRequests uint64  `json:"write_requests"`
	CacheReadTime float64 `json:"cache_read_time"`
	DiskReadTime  float64 `json:"disk_read_time"`
	HitCount      uint64  `json:"-"`
	MissCount     uint64  `json:"-"`
}

// counters is the live, lock-free counter block a running cache engine
// updates. Durations are accumulated as nanoseconds under an atomic and
// converted to fractional seconds only when a Snapshot is taken, so the
// hot path never does floating point arithmetic under contention.
type counters struct {
	hitCount      atomic.Uint64
	missCount     atomic.Uint64
	readRequests  atomic.Uint64
	writeRequests atomic.Uint64
	cacheReadNs   atomic.Int64
	diskReadNs    atomic.Int64
}

func (c *counters) recordReadRequest()  { c.readRequests.Add(1) }
func (c *counters) recordWriteRequest() { c.writeRequests.Add(1) }
func (c *counters) recordHit()          { c.hitCount.Add(1) }
func (c *counters) recordMiss()         { c.missCount.Add(1) }

func (c *counters) recordCacheReadTime(since time.Time) {
	c.cacheReadNs.Add(int64(time.Since(since)))
}

func (c *counters) recordDiskReadTime(since time.Time) {
	c.diskReadNs.Add(int64(time.Since(since)))
}

// snapshot returns a point-in-time Stats, computing hit_rate as
// hit_count/(hit_count+miss_count), or 0 when there have been no reads.
func (c *counters) snapshot() Stats {
	hits := c.hitCount.Load()
	misses := c.missCount.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		HitRate:       hitRate,
		ReadRequests:  c.readRequests.Load(),
		WriteRequests: c.writeRequests.Load(),
		CacheReadTime: time.Duration(c.cacheReadNs.Load()).Seconds(),
		DiskReadTime:  time.Duration(c.diskReadNs.Load()).Seconds(),
		HitCount:      hits,
		MissCount:     misses,
	}
}
