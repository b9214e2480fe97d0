// Package ring implements the MD5-based consistent hash ring the
// coordinator uses to route a key to its owning shard, replacing the
// teacher's FNV-1a-mod-numShards scheme with the MD5-modular-ring scheme
// the original coordinator used (original_source/coordinator_node.py's
// ConsistentHashing).
//
// # Overview
//
// Each shard gets Replicas virtual points on the ring, positioned by
// hashing "<shard>:<i>" for i in [0, Replicas). A key's owning shard is
// the virtual point immediately clockwise of the key's own hash
// position, found by binary search over the sorted list of virtual
// point positions, wrapping around to the first point if the key hashes
// past the last one.
//
// # Thread Safety
//
// Ring is safe for concurrent use: reads (GetNode) take an RLock, writes
// (AddShard/RemoveShard) take an exclusive Lock. The coordinator builds
// its ring once at startup from a fixed shard list (spec: static
// membership, no runtime rebalancing), so contention in practice is read
// only, but the locking is unconditional rather than left to the caller.
package ring

import (
	"crypto/md5"
	"math/big"
	"sort"
	"strconv"
	"sync"
)

// DefaultReplicas is the number of virtual nodes placed per shard when a
// Ring is constructed with New, matching the replicas=3 default the
// original ConsistentHashing used.
const DefaultReplicas = 3

// Ring is a consistent hash ring mapping string keys to shard addresses.
type Ring struct {
	mu        sync.RWMutex
	replicas  int
	positions []*big.Int          // sorted ascending
	owners    map[string]string   // position.String() -> shard address
}

// New builds an empty ring with the given number of virtual nodes per
// shard. A non-positive replicas falls back to DefaultReplicas.
func New(replicas int) *Ring {
	if replicas <= 0 {
		replicas = DefaultReplicas
	}
	return &Ring{
		replicas: replicas,
		owners:   make(map[string]string),
	}
}

// NewWithShards builds a ring and immediately adds each of shards in
// order, as the coordinator does from its static CLI-provided shard
// list at startup.
func NewWithShards(replicas int, shards []string) *Ring {
	r := New(replicas)
	for _, s := range shards {
		r.AddShard(s)
	}
	return r
}

// hashKey returns the 128-bit MD5 digest of s as a big-endian integer,
// matching int(hashlib.md5(s.encode('utf-8')).hexdigest(), 16).
func hashKey(s string) *big.Int {
	sum := md5.Sum([]byte(s))
	return new(big.Int).SetBytes(sum[:])
}

// AddShard places r.replicas virtual points for shard on the ring.
// Adding a shard already present re-adds its points, which is harmless
// but wasteful; callers shouldn't add the same shard twice.
func (r *Ring) AddShard(shard string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.replicas; i++ {
		pos := hashKey(virtualKey(shard, i))
		r.owners[pos.String()] = shard
		r.positions = append(r.positions, pos)
	}
	sort.Slice(r.positions, func(i, j int) bool {
		return r.positions[i].Cmp(r.positions[j]) < 0
	})
}

// RemoveShard removes all of shard's virtual points from the ring.
func (r *Ring) RemoveShard(shard string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.replicas; i++ {
		pos := hashKey(virtualKey(shard, i))
		delete(r.owners, pos.String())
	}

	kept := r.positions[:0]
	for _, pos := range r.positions {
		if owner, ok := r.owners[pos.String()]; ok && owner != "" {
			kept = append(kept, pos)
		}
	}
	r.positions = kept
}

// GetNode returns the shard address that owns key, or "" if the ring
// has no shards.
func (r *Ring) GetNode(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.positions) == 0 {
		return ""
	}

	target := hashKey(key)
	idx := sort.Search(len(r.positions), func(i int) bool {
		return r.positions[i].Cmp(target) > 0
	})
	if idx == len(r.positions) {
		idx = 0
	}
	return r.owners[r.positions[idx].String()]
}

// Shards returns the distinct shard addresses currently on the ring, in
// no particular order.
func (r *Ring) Shards() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var shards []string
	for _, owner := range r.owners {
		if _, ok := seen[owner]; !ok {
			seen[owner] = struct{}{}
			shards = append(shards, owner)
		}
	}
	return shards
}

func virtualKey(shard string, i int) string {
	return shard + ":" + strconv.Itoa(i)
}
