// Package storage defines the overflow-tier abstraction the cache engine
// spills evicted entries into, plus the two implementations the rest of
// the tree uses: an in-memory one for tests and a disk-backed one for
// production shard nodes.
//
// # Overview
//
// A cache engine (package cache) keeps a bounded number of entries
// resident in an LRU ordering; everything pushed out of that ordering is
// handed to a Store to persist. The Store interface is deliberately
// narrow — Get, Put, Delete on single keys — because the engine owns all
// ordering and capacity decisions; the store just has to remember what
// it's told and not lose it to a concurrent reader mid-write.
//
// # Architecture
//
//	┌────────────────────────────────────┐
//	│          cache.Engine               │
//	└──────────────┬──────────────────────┘
//	               │ Get / Put / Delete
//	               ▼
//	┌────────────────────────────────────┐
//	│          storage.Store              │
//	│        (interface, this package)    │
//	└───────┬──────────────────┬──────────┘
//	        ▼                  ▼
//	┌───────────────┐  ┌───────────────────┐
//	│  MemoryStore   │  │    DiskStore       │
//	│  map + mutex   │  │  one JSON file      │
//	│  (tests)       │  │  per key on disk    │
//	└───────────────┘  └───────────────────┘
//
// # Implementations
//
// MemoryStore: a mutex-guarded map, useful for unit tests that want to
// exercise the cache engine's overflow path without touching a real
// filesystem. Holds everything in heap memory; nothing survives process
// restart.
//
// DiskStore: one JSON file per key under a configured directory (default
// "./cache_disk", per the shard node's CLI), each file holding a single
// `{"key": "value"}` object — the direct Go counterpart of the original
// lruCache.py's write_to_disk/read_from_disk pair. Writes land via a
// sequence-numbered temp file and an atomic os.Rename into place, so a
// reader racing a writer for the same key never observes a half-written
// record. DiskStore keeps no index of its own; key existence is entirely
// a function of whether `<dir>/<key>.json` exists.
//
// # Concurrency
//
// Both implementations are safe for concurrent use on their own, but in
// practice the only caller is a single cache.Engine driven by a shard
// node's single worker goroutine, so neither implementation's internal
// locking (MemoryStore's mutex, DiskStore's per-write temp-file sequence
// number) is ever actually contended in production. The locking exists
// so a Store can be exercised independently of that single-writer
// guarantee in tests, not because live traffic needs it.
//
// # Error Handling
//
// ErrKeyNotFound is the only sentinel error the package defines; callers
// compare against it with errors.Is or a direct ==. DiskStore returns
// filesystem errors from os.ReadFile/os.WriteFile/os.Rename largely
// unwrapped (NewDiskStore is the exception, wrapping the initial MkdirAll
// failure with %w) — the cache engine's contract treats any error the
// same as a miss, so there's little a caller gains from unwrapping
// further.
//
// # Usage
//
//	// Tests: no filesystem dependency.
//	store := storage.NewMemoryStore()
//
//	// Production: durable overflow tier for a shard node.
//	store, err := storage.NewDiskStore("./cache_disk")
//	if err != nil {
//	    log.Fatalf("disk store: %v", err)
//	}
//
//	if err := store.Put("user:123", []byte(`{"name":"Alice"}`)); err != nil {
//	    log.Printf("put failed: %v", err)
//	}
//
//	value, err := store.Get("user:123")
//	switch {
//	case errors.Is(err, storage.ErrKeyNotFound):
//	    log.Println("not on disk")
//	case err != nil:
//	    log.Printf("read failed: %v", err)
//	}
//
// # Testing
//
// store_test.go exercises the Store interface against MemoryStore;
// diskstore_test.go repeats the same contract against a DiskStore rooted
// in a t.TempDir(), plus the temp-file-and-rename write path.
//
// # Future
//
// A batched Put (mirroring the wire protocol's per-frame batching of
// commands) would let a shard node flush several evictions in one
// fsync-bound round trip instead of one DiskStore.Put per entry; nothing
// in the current Store interface blocks adding it as a second method.
//
// # See Also
//
// Related packages:
//   - internal/cache: the sole caller, owns all eviction decisions
//   - internal/shardnode: wires a DiskStore into a cache.Engine at startup
package storage
