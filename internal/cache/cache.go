// Package cache implements the two-tier cache engine: a capacity-bounded
// LRU held in memory, backed by a disk overflow tier for evicted entries.
// See doc.go for the full package documentation.
package cache

import (
	"log"
	"time"

	"github.com/parthgangar/shardkv/internal/storage"
)

// Engine is the cache engine described in spec §4.1: an LRU index over
// CacheEntry values with O(1) get/put/evict, backed by an overflow Store
// for entries pushed out of memory, and a counter block tracking hits,
// misses, and timing for the `stats` command.
//
// Engine is not internally synchronized. Per the shard node's
// single-worker design (spec §5), an Engine is only ever driven by one
// goroutine at a time, so adding a mutex here would just be unused
// overhead on every call; concurrent access is the caller's contract to
// avoid, not this package's to defend against.
type Engine struct {
	overflow storage.Store
	metrics  Metrics
	index    map[string]*entry
	seq      list
	counters counters
	capacity int
}

// New constructs a cache engine with the given resident capacity, backed
// by overflow for evicted entries. A capacity below 1 is raised to 1.
func New(capacity int, overflow storage.Store) *Engine {
	if capacity < 1 {
		capacity = 1
	}
	return &Engine{
		capacity: capacity,
		overflow: overflow,
		metrics:  NoopMetrics{},
		index:    make(map[string]*entry, capacity),
	}
}

// SetMetrics installs an operational metrics sink, replacing the default
// no-op. Intended to be called once, before the engine is driven by its
// worker goroutine.
func (e *Engine) SetMetrics(m Metrics) {
	if m != nil {
		e.metrics = m
	}
}

// Get implements spec §4.1's get: promote-on-hit for resident keys,
// disk-consult-on-miss for everything else, with hit/miss and timing
// counters recorded either way.
//
// A disk hit is not re-admitted to the resident LRU (spec §9 Open
// Question, resolved: preserve the original's behavior). This keeps Get
// a read-only operation with respect to the resident set, at the cost of
// repeatedly paying disk latency for a key that stays popular after
// eviction.
func (e *Engine) Get(key string) (string, bool) {
	e.counters.recordReadRequest()
	start := time.Now()

	if n, ok := e.index[key]; ok {
		e.seq.moveToFront(n)
		e.counters.recordHit()
		e.metrics.Hit()
		e.counters.recordCacheReadTime(start)
		return n.value, true
	}

	value, err := e.overflow.Get(key)
	defer e.counters.recordDiskReadTime(start)
	if err != nil {
		e.counters.recordMiss()
		e.metrics.Miss()
		return "", false
	}
	e.counters.recordHit()
	e.metrics.Hit()
	return string(value), true
}

// Put implements spec §4.1's put: drop any resident entry for the key,
// purge any disk record for it (the corrected rule in §9, applied on
// every Put), evict-the-tail-to-disk when at capacity, then insert the
// new entry at the head.
func (e *Engine) Put(key, value string) {
	e.counters.recordWriteRequest()

	if n, ok := e.index[key]; ok {
		e.seq.unlink(n)
		delete(e.index, key)
	}

	// Spec §9's corrected rule: a put that replaces a key must not leave
	// a stale disk copy behind for a later miss to resurrect.
	if err := e.overflow.Delete(key); err != nil {
		log.Printf("cache: purge stale disk record for %q: %v", key, err)
	}

	if len(e.index) >= e.capacity {
		e.evictTail()
	}

	n := &entry{key: key, value: value}
	e.seq.pushFront(n)
	e.index[key] = n
}

// evictTail writes the current tail to the overflow tier, then unlinks
// and drops it from the index, preserving the capacity invariant even if
// the disk write fails (spec §7: an evict-lost event, not a halted put).
func (e *Engine) evictTail() {
	victim := e.seq.tail
	if victim == nil {
		return
	}

	if err := e.overflow.Put(victim.key, []byte(victim.value)); err != nil {
		log.Printf("cache: evict %q to disk: %v", victim.key, err)
		e.metrics.EvictLost()
	} else {
		e.metrics.EvictToDisk()
	}

	e.seq.unlink(victim)
	delete(e.index, victim.key)
}

// Stats returns a point-in-time snapshot of the counter block.
func (e *Engine) Stats() Stats {
	return e.counters.snapshot()
}

// Len reports the number of resident entries, primarily for tests
// asserting the `|index| == |sequence| <= capacity` invariant.
func (e *Engine) Len() int {
	return len(e.index)
}
