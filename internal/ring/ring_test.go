package ring

import (
	"crypto/md5"
	"math/big"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_EmptyReturnsNoOwner(t *testing.T) {
	r := New(3)
	assert.Equal(t, "", r.GetNode("anykey"))
}

func TestRing_SingleShardOwnsEverything(t *testing.T) {
	r := NewWithShards(3, []string{"127.0.0.1:9001"})

	assert.Equal(t, "127.0.0.1:9001", r.GetNode("alpha"))
	assert.Equal(t, "127.0.0.1:9001", r.GetNode("beta"))
}

func TestRing_DeterministicForSameKey(t *testing.T) {
	r := NewWithShards(3, []string{"shard-a", "shard-b", "shard-c"})

	first := r.GetNode("user123")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, r.GetNode("user123"))
	}
}

func TestRing_RemoveShardRedistributes(t *testing.T) {
	r := NewWithShards(3, []string{"shard-a", "shard-b"})

	owner := r.GetNode("somekey")
	r.RemoveShard(owner)

	newOwner := r.GetNode("somekey")
	assert.NotEqual(t, owner, newOwner)
	assert.NotEqual(t, "", newOwner)
}

func TestRing_MatchesMD5Hash(t *testing.T) {
	sum := md5.Sum([]byte("shard-a:0"))
	expected := new(big.Int).SetBytes(sum[:])

	r := NewWithShards(1, []string{"shard-a"})
	got := hashKey("shard-a:0")

	assert.Equal(t, 0, expected.Cmp(got))
	_ = r
}

func TestRing_Shards_ListsDistinctOwners(t *testing.T) {
	r := NewWithShards(3, []string{"shard-a", "shard-b", "shard-c"})

	shards := r.Shards()
	assert.Len(t, shards, 3)
	assert.Contains(t, shards, "shard-a")
	assert.Contains(t, shards, "shard-b")
	assert.Contains(t, shards, "shard-c")
}

func TestRing_WraparoundToFirstPosition(t *testing.T) {
	r := NewWithShards(3, []string{"shard-a", "shard-b"})

	// Find a key hashing past the last ring position; it must wrap to the
	// owner of the first position.
	last := r.positions[len(r.positions)-1]
	for i := 0; ; i++ {
		key := "key" + strconv.Itoa(i)
		if hashKey(key).Cmp(last) > 0 {
			assert.Equal(t, r.owners[r.positions[0].String()], r.GetNode(key))
			return
		}
	}
}
