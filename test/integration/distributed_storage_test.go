package integration

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthgangar/shardkv/internal/cache"
	"github.com/parthgangar/shardkv/internal/coordinator"
	"github.com/parthgangar/shardkv/internal/ring"
	"github.com/parthgangar/shardkv/internal/shardnode"
	"github.com/parthgangar/shardkv/internal/storage"
	"github.com/parthgangar/shardkv/internal/wire"
)

// startShard boots one shard node on an ephemeral port and returns its
// address, cleaning itself up at test end.
func startShard(t *testing.T, capacity int) string {
	t.Helper()

	engine := cache.New(capacity, storage.NewMemoryStore())
	node := shardnode.New(engine, shardnode.Config{QueueSize: 16})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = node.Serve(ln) }()
	t.Cleanup(func() {
		node.Close()
		ln.Close()
	})

	return ln.Addr().String()
}

func sendFrame(t *testing.T, conn net.Conn, lines []string) []string {
	t.Helper()
	require.NoError(t, wire.WriteFrame(conn, lines))
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	resp, err := wire.ReadFrame(conn)
	require.NoError(t, err)
	return resp
}

func TestIntegration_SingleShardBatch(t *testing.T) {
	addr := startShard(t, 10)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	resp := sendFrame(t, conn, []string{"set foo bar", "get foo", "stats"})
	assert.Equal(t, "Inserted", resp[0])
	assert.Equal(t, "bar", resp[1])
	assert.Contains(t, resp[2], "hit_rate")
}

func TestIntegration_CapacityTwoEvictsToDisk(t *testing.T) {
	addr := startShard(t, 2)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	resp := sendFrame(t, conn, []string{"set a 1", "set b 2", "set c 3", "get a"})
	assert.Equal(t, []string{"Inserted", "Inserted", "Inserted", "1"}, resp)
}

func TestIntegration_MissingKey(t *testing.T) {
	addr := startShard(t, 10)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	resp := sendFrame(t, conn, []string{"get ghost"})
	assert.Equal(t, "Error: Non existent key", resp[0])
}

func TestIntegration_InvalidCommand(t *testing.T) {
	addr := startShard(t, 10)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	resp := sendFrame(t, conn, []string{"delete x"})
	assert.Equal(t, "Error: Invalid command", resp[0])
}

// startCoordinator dials addrs and returns a ready Coordinator.
func startCoordinator(t *testing.T, addrs []string) *coordinator.Coordinator {
	t.Helper()

	c := coordinator.New(ring.DefaultReplicas)
	require.NoError(t, c.DialShards(context.Background(), addrs))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestIntegration_TwoShardRoutingIsConsistent(t *testing.T) {
	shardA := startShard(t, 10)
	shardB := startShard(t, 10)
	c := startCoordinator(t, []string{shardA, shardB})

	first := c.Route("set mykey myvalue")
	assert.Equal(t, "Inserted", first)

	for i := 0; i < 5; i++ {
		assert.Equal(t, "myvalue", c.Route("get mykey"))
	}
}

func TestIntegration_MultiShardStatsAggregation(t *testing.T) {
	shardA := startShard(t, 10)
	shardB := startShard(t, 10)
	c := startCoordinator(t, []string{shardA, shardB})

	// Drive enough distinct keys that both shards see traffic regardless
	// of which one the ring happens to assign them to.
	for i := 0; i < 20; i++ {
		key := "key" + string(rune('a'+i))
		c.Route("set " + key + " v")
		c.Route("get " + key)
	}

	result := c.Route("stats")
	assert.Contains(t, result, "hit_rate")
	assert.Contains(t, result, "read_requests")
}

func TestIntegration_CoordinatorInvalidCommand(t *testing.T) {
	shardA := startShard(t, 10)
	c := startCoordinator(t, []string{shardA})

	assert.Equal(t, "Error: Invalid command", c.Route("frobnicate"))
}
