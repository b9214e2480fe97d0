// Package shardnode implements the TCP server that fronts a single
// cache.Engine: an acceptor goroutine, one reader goroutine per
// connection, and a single worker goroutine that drains a shared queue
// and executes commands sequentially.
//
// # Overview
//
// This is the Go shape of the original DHT's threading model
// (listen_to_clients/client_handler/process_requests_from_queue in
// original_source/dht.py): many readers feed one queue, one worker
// drains it. The worker is the cache engine's only caller, so
// cache.Engine itself needs no internal locking (see package cache's
// doc comment) — correctness of that invariant lives entirely in this
// package's goroutine topology.
//
// # Concurrency
//
//   - One acceptor goroutine calls Accept in a loop and spawns a reader
//     per connection.
//   - Each reader goroutine blocks on wire.ReadFrame and pushes a
//     request onto a single buffered channel (the queue).
//   - One worker goroutine range-loops over the queue, executes each
//     request's lines through command.ExecuteAll, and writes the result
//     back on that request's connection.
//
// A slow or wedged worker backs up the queue, which backs up readers,
// which backs up TCP itself. This backpressure comes from using a
// bounded, buffered Go channel where the original Python version used
// an unbounded queue.Queue(), which never blocked its readers.
package shardnode

import (
	"log"
	"net"

	"github.com/parthgangar/shardkv/internal/cache"
	"github.com/parthgangar/shardkv/internal/command"
	"github.com/parthgangar/shardkv/internal/wire"
)

// DefaultQueueSize is the request queue's buffer depth when Config
// doesn't specify one.
const DefaultQueueSize = 256

// Config configures a Node's runtime tunables. Zero values fall back to
// package defaults.
type Config struct {
	// QueueSize bounds how many parsed-but-not-yet-executed requests
	// may be buffered between the reader goroutines and the worker.
	QueueSize int
}

// Node is a single shard server: one cache engine, one listener, one
// worker.
type Node struct {
	engine *cache.Engine
	queue  chan request
	done   chan struct{}
}

// New creates a Node around engine with the given configuration.
func New(engine *cache.Engine, cfg Config) *Node {
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Node{
		engine: engine,
		queue:  make(chan request, size),
		done:   make(chan struct{}),
	}
}

// Serve accepts connections on ln until it errors or Close is called,
// spawning the single worker goroutine first. Serve blocks until the
// listener stops producing connections.
func (n *Node) Serve(ln net.Listener) error {
	go n.runWorker()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-n.done:
				return nil
			default:
				return err
			}
		}
		go n.readConn(conn)
	}
}

// Close signals Serve to treat a subsequent Accept error as a clean
// shutdown rather than a failure, and stops the worker goroutine.
func (n *Node) Close() {
	close(n.done)
}

// readConn repeatedly reads frames from conn, enqueuing each as a
// request, until the peer closes the connection or a malformed frame
// breaks the protocol (spec §4.2: a reader that sends garbage gets
// disconnected, not crash the node).
func (n *Node) readConn(conn net.Conn) {
	defer conn.Close()

	for {
		lines, err := wire.ReadFrame(conn)
		if err != nil {
			if err != wire.ErrClosed {
				log.Printf("shardnode: connection error: %v", err)
			}
			return
		}

		select {
		case n.queue <- request{conn: conn, lines: lines}:
		case <-n.done:
			return
		}
	}
}

// runWorker drains the queue sequentially, the sole caller of the
// node's cache engine.
func (n *Node) runWorker() {
	for {
		select {
		case req := <-n.queue:
			results := command.ExecuteAll(n.engine, req.lines)
			if err := wire.WriteFrame(req.conn, results); err != nil {
				log.Printf("shardnode: write response: %v", err)
			}
		case <-n.done:
			return
		}
	}
}
