// Command shardnode runs a single shard server: a capacity-bounded
// two-tier cache engine (package cache) behind the TCP frame protocol
// (package wire) dispatched through a queue-and-worker server (package
// shardnode).
//
// Usage:
//
//	shardnode [-config path.yaml] [-metrics-addr addr] <listen-ip> <listen-port>
//
// The listen address is mandatory, per spec; -config and -metrics-addr
// are optional tunables layered on top (spec §9 names them as natural
// extension points, not part of the legacy wire protocol itself).
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/parthgangar/shardkv/internal/cache"
	"github.com/parthgangar/shardkv/internal/shardnode"
	"github.com/parthgangar/shardkv/internal/storage"
)

// logFatal is a variable so tests can intercept a fatal startup error
// without killing the test process.
var logFatal = log.Fatalf

const (
	defaultCapacity = 10
	defaultDiskDir  = "cache_disk"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file (capacity, disk_dir, queue_size)")
	metricsAddr := flag.String("metrics-addr", "", "optional address to serve Prometheus /metrics on, e.g. :9100")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		logFatal("usage: shardnode [-config path.yaml] [-metrics-addr addr] <listen-ip> <listen-port>")
	}
	ip, port := args[0], args[1]

	capacity := defaultCapacity
	diskDir := defaultDiskDir
	queueSize := shardnode.DefaultQueueSize

	if *configPath != "" {
		cfg, err := shardnode.LoadFileConfig(*configPath)
		if err != nil {
			logFatal("%v", err)
		}
		if cfg.Capacity > 0 {
			capacity = cfg.Capacity
		}
		if cfg.DiskDir != "" {
			diskDir = cfg.DiskDir
		}
		if cfg.QueueSize > 0 {
			queueSize = cfg.QueueSize
		}
	}

	disk, err := storage.NewDiskStore(diskDir)
	if err != nil {
		logFatal("disk store %s: %v", diskDir, err)
	}

	engine := cache.New(capacity, disk)

	if *metricsAddr != "" {
		engine.SetMetrics(shardnode.NewPromMetrics(nil))
		go func() {
			if err := shardnode.ServeMetrics(*metricsAddr); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	node := shardnode.New(engine, shardnode.Config{QueueSize: queueSize})

	addr := fmt.Sprintf("%s:%s", ip, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logFatal("listen on %s: %v", addr, err)
	}

	go func() {
		log.Printf("shardnode listening on %s (capacity=%d disk=%s)", addr, capacity, diskDir)
		if err := node.Serve(ln); err != nil {
			log.Printf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	node.Close()
	ln.Close()
	log.Println("shardnode stopped")
}
