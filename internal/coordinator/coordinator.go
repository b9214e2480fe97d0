// Package coordinator implements the routing layer that sits in front
// of a fixed set of shard nodes, forwarding set/get commands to the
// shard a consistent hash ring assigns their key to and aggregating
// stats across every shard.
//
// # Overview
//
// A Coordinator holds one persistent TCP connection per shard
// (original_source/coordinator_node.py's server_sockets dict, here a
// map guarded by a mutex rather than rebuilt per request) and a
// ring.Ring built once at startup from the shard address list. set/get
// commands are routed to the single shard the ring names; stats
// commands are broadcast to every shard in turn and the results
// combined with AggregateJSON.
//
// # Concurrency
//
// cmd/coordinator runs each client connection on its own goroutine, so
// Route/RouteAll can be called concurrently from many goroutines at
// once — unlike the shard node, there is no single worker or request
// queue here. What's preserved is the "exactly one outstanding request
// per shard connection" rule: netShardConn.Send holds a per-connection
// mutex across its full write-then-read round trip, so two client
// goroutines racing to forward a command to the same shard are
// serialized at that mutex rather than interleaving writes and reads on
// the shared socket. Commands destined for different shards proceed in
// parallel; a Coordinator never itself queues or reorders requests.
package coordinator

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/parthgangar/shardkv/internal/ring"
	"github.com/parthgangar/shardkv/internal/wire"
)

// ShardConn is the minimal transport a Coordinator needs from a shard
// connection: send a frame, read the response frame back. It's an
// interface so tests can substitute an in-memory fake instead of a real
// net.Conn.
type ShardConn interface {
	Send(lines []string) ([]string, error)
	Close() error
}

// Coordinator routes commands to shards and aggregates their stats.
type Coordinator struct {
	mu      sync.Mutex
	ring    *ring.Ring
	shards  map[string]ShardConn
	metrics Metrics
}

// New creates a Coordinator with an empty ring; shards are attached via
// AddShard.
func New(replicas int) *Coordinator {
	return &Coordinator{
		ring:    ring.New(replicas),
		shards:  make(map[string]ShardConn),
		metrics: NoopMetrics{},
	}
}

// SetMetrics installs an operational metrics sink, replacing the
// default no-op. Intended to be called once, before the coordinator
// starts accepting client connections.
func (c *Coordinator) SetMetrics(m Metrics) {
	if m != nil {
		c.metrics = m
	}
}

// AddShard registers conn as the connection for shard addr and adds addr
// to the consistent hash ring. Calling AddShard twice for the same addr
// replaces its connection.
func (c *Coordinator) AddShard(addr string, conn ShardConn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.shards[addr]; !exists {
		c.ring.AddShard(addr)
	}
	c.shards[addr] = conn
}

// Shards returns the registered shard addresses, in no particular
// order.
func (c *Coordinator) Shards() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	addrs := make([]string, 0, len(c.shards))
	for addr := range c.shards {
		addrs = append(addrs, addr)
	}
	return addrs
}

// Close closes every shard connection, returning the first error
// encountered, if any, after attempting to close them all.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for _, conn := range c.shards {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Coordinator) connFor(addr string) (ShardConn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conn, ok := c.shards[addr]
	return conn, ok
}

// Route forwards a single command line to the shard its key belongs to
// (set/get) or broadcasts it to every shard and aggregates the result
// (stats), matching forward_request_to_server's branching in the
// original coordinator.
func (c *Coordinator) Route(line string) string {
	switch {
	case line == "stats":
		return c.routeStats()

	case setPattern.MatchString(line):
		m := setPattern.FindStringSubmatch(line)
		return c.forwardToKey(m[1], line)

	case getPattern.MatchString(line):
		m := getPattern.FindStringSubmatch(line)
		return c.forwardToKey(m[1], line)

	default:
		return invalidCommand
	}
}

// RouteAll forwards each line in order, mirroring the shard node's
// ExecuteAll and the original's per-frame "list of commands" handling.
func (c *Coordinator) RouteAll(lines []string) []string {
	results := make([]string, len(lines))
	for i, line := range lines {
		results[i] = c.Route(line)
	}
	return results
}

func (c *Coordinator) forwardToKey(key, line string) string {
	c.mu.Lock()
	addr := c.ring.GetNode(key)
	c.mu.Unlock()

	if addr == "" {
		return invalidCommand
	}

	conn, ok := c.connFor(addr)
	if !ok {
		return fmt.Sprintf("Error: shard %s unavailable", addr)
	}

	c.metrics.ForwardedToShard(addr)
	resp, err := conn.Send([]string{line})
	if err != nil {
		return fmt.Sprintf("Error: shard %s: %v", addr, err)
	}
	if len(resp) == 0 {
		return invalidCommand
	}
	return resp[0]
}

func (c *Coordinator) routeStats() string {
	start := time.Now()
	defer func() { c.metrics.StatsPoll(time.Since(start)) }()

	addrs := c.Shards()

	var perShard []string
	for _, addr := range addrs {
		conn, ok := c.connFor(addr)
		if !ok {
			continue
		}
		resp, err := conn.Send([]string{"stats"})
		if err != nil || len(resp) == 0 {
			continue
		}
		perShard = append(perShard, resp[0])
	}

	aggregated, err := AggregateJSON(perShard)
	if err != nil {
		return invalidCommand
	}
	return aggregated
}

// netShardConn adapts a net.Conn to the ShardConn interface using the
// wire package's frame helpers, the production implementation used by
// cmd/coordinator. Send holds an internal lock for the full
// write-then-read round trip, enforcing the "exactly one outstanding
// request per shard connection" rule even though cmd/coordinator
// services client connections on separate goroutines.
type netShardConn struct {
	mu   sync.Mutex
	conn net.Conn
}

// NewNetShardConn wraps conn for use as a Coordinator's ShardConn.
func NewNetShardConn(conn net.Conn) ShardConn {
	return &netShardConn{conn: conn}
}

func (n *netShardConn) Send(lines []string) ([]string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := wire.WriteFrame(n.conn, lines); err != nil {
		return nil, err
	}
	return wire.ReadFrame(n.conn)
}

func (n *netShardConn) Close() error {
	return n.conn.Close()
}
