// Package cache implements the two-tier cache engine at the heart of each
// shard node: a capacity-bounded, in-memory LRU index backed by a disk
// overflow tier for entries it evicts.
//
// # Overview
//
// The engine is a single intrusive doubly linked list (package-internal
// type entry) plus a map from key to list node — the re-architecture the
// original Python HashTable's hand-rolled pointer-chasing structure
// layered on a separate dict asked for, done the Go way: one struct
// embedding both the map and the list, no separate "node manager"
// object. The list's head is the most-recently-used entry, the tail the
// least-recently-used; Get promotes a hit to the head, Put evicts the
// tail to disk before linking a new head when the index is at capacity.
//
// # Architecture
//
//	┌──────────────────────────────────────────────┐
//	│                   Engine                       │
//	│                                                │
//	│   ┌────────────────────────────────────────┐  │
//	│   │  index  map[string]*entry               │  │
//	│   └────────────────────────────────────────┘  │
//	│                    │ O(1) lookup               │
//	│                    ▼                           │
//	│   ┌────────────────────────────────────────┐  │
//	│   │  list  (intrusive, doubly linked)        │  │
//	│   │                                          │  │
//	│   │  head ─▶ [MRU] ─▶ ... ─▶ [LRU] ─▶ tail   │  │
//	│   └────────────────────────────────────────┘  │
//	│                    │ evictTail()                │
//	│                    ▼                           │
//	│   ┌────────────────────────────────────────┐  │
//	│   │  counters  (atomic hit/miss/timing)       │  │
//	│   └────────────────────────────────────────┘  │
//	└──────────────────────────────────────────────┘
//	                     │
//	                     ▼ on eviction
//	           storage.Store (disk overflow)
//
// # Concurrency
//
// Engine carries no internal locking. Its sole caller is the shard
// node's single worker goroutine (package shardnode), so serialization
// is a property of the caller's design, not this package's. A caller
// that drives one Engine from multiple goroutines is violating that
// contract and will see data races, same as the original single-threaded
// design would see corrupted state under equivalent misuse. This is a
// deliberate trade against a sync.Mutex-per-Engine design: the shard
// node's queue already serializes every command, so a second lock here
// would only add contention with no added safety.
//
// # Disk overflow
//
// Evicted entries are written to a storage.Store (package storage)
// before being unlinked. A Get that misses memory consults the same
// store; a hit there is returned but is not re-admitted to the resident
// set — re-admission would need either a second pass through Put's
// eviction logic or a bypass of it, and neither is worth the complexity
// for a tier whose whole purpose is to be the cold path. Every Put first
// purges any disk record for its key, so a later miss can't resurrect an
// out-of-date value.
//
// # Statistics
//
// Every Get/Put updates a lock-free counter block (package-internal
// counters) tracked as atomics, snapshotted on demand by Stats() into
// the wire-visible Stats struct the `stats` command serializes: hit
// rate, read/write request totals, and accumulated cache/disk read time
// in seconds.
//
// # Metrics
//
// Engine.SetMetrics installs a Metrics sink (Hit, Miss, EvictToDisk,
// EvictLost) separate from the Stats snapshot above — Stats answers "how
// is this shard performing right now" for the `stats` wire command,
// Metrics answers "what happened over time" for an external monitoring
// system. The default is NoopMetrics; cmd/shardnode wires PromMetrics
// (package shardnode) in when started with -metrics-addr.
//
// # Usage
//
//	disk, err := storage.NewDiskStore("./cache_disk")
//	if err != nil {
//	    log.Fatalf("disk store: %v", err)
//	}
//	engine := cache.New(10, disk)
//
//	engine.Put("user:123", `{"name":"Alice"}`)
//
//	value, hit := engine.Get("user:123")
//	if !hit {
//	    log.Println("miss, not resident or on disk")
//	}
//
//	stats := engine.Stats()
//	fmt.Printf("hit rate: %.2f\n", stats.HitRate)
//
// # Testing
//
// cache_test.go and list_test.go exercise eviction order, disk overflow
// round-tripping, and the Stats snapshot directly against the Engine and
// its package-internal index and list; there is no mock Engine since the package has exactly one
// production caller.
//
// # Future
//
// TTL-based expiry and a configurable admission policy (e.g. re-admit a
// disk hit to memory under light load) are natural extensions the
// current Get/Put split doesn't preclude, but neither is needed by the
// command set this engine currently serves.
//
// # See Also
//
// Related packages:
//   - internal/storage: the overflow tier Engine evicts into
//   - internal/shardnode: the single-worker caller that owns an Engine
package cache
