// Command coordinator runs the routing layer in front of a fixed set of
// shardnode processes: it builds a consistent hash ring over the shard
// addresses given on the command line, dials each one, and forwards
// incoming client frames to the shard (or every shard, for stats) the
// ring names.
//
// Usage:
//
//	coordinator [-metrics-addr addr] <listen-ip> <listen-port> <shard-ip:port>...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/parthgangar/shardkv/internal/coordinator"
	"github.com/parthgangar/shardkv/internal/ring"
	"github.com/parthgangar/shardkv/internal/wire"
)

// logFatal is a variable so tests can intercept a fatal startup error
// without killing the test process.
var logFatal = log.Fatalf

func main() {
	metricsAddr := flag.String("metrics-addr", "", "optional address to serve Prometheus /metrics on, e.g. :9100")
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		logFatal("usage: coordinator [-metrics-addr addr] <listen-ip> <listen-port> <shard-ip:port>...")
	}
	ip, port, shardAddrs := args[0], args[1], args[2:]

	c := coordinator.New(ring.DefaultReplicas)

	if *metricsAddr != "" {
		c.SetMetrics(coordinator.NewPromMetrics(nil))
		go func() {
			if err := coordinator.ServeMetrics(*metricsAddr); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	if err := c.DialShards(context.Background(), shardAddrs); err != nil {
		logFatal("dialing shards: %v", err)
	}
	log.Printf("connected to %d shard(s)", len(shardAddrs))

	addr := fmt.Sprintf("%s:%s", ip, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logFatal("listen on %s: %v", addr, err)
	}

	done := make(chan struct{})
	go serve(ln, c, done)
	log.Printf("coordinator listening on %s", addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	close(done)
	ln.Close()
	c.Close()
	log.Println("coordinator stopped")
}

func serve(ln net.Listener, c *coordinator.Coordinator, done chan struct{}) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-done:
				return
			default:
				log.Printf("accept: %v", err)
				return
			}
		}
		go handleClient(conn, c)
	}
}

func handleClient(conn net.Conn, c *coordinator.Coordinator) {
	defer conn.Close()

	for {
		lines, err := wire.ReadFrame(conn)
		if err != nil {
			if err != wire.ErrClosed {
				log.Printf("coordinator: connection error: %v", err)
			}
			return
		}

		results := c.RouteAll(lines)
		if err := wire.WriteFrame(conn, results); err != nil {
			log.Printf("coordinator: write response: %v", err)
			return
		}
	}
}
