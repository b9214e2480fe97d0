package shardnode

import "net"

// request is one connection's inbound frame, queued for the single
// worker goroutine to execute against the shared cache engine and write
// a response back to, mirroring the original DHT's (conn, msg) tuple
// pulled off its request queue.
type request struct {
	conn  net.Conn
	lines []string
}
