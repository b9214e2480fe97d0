package coordinator

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
)

// DialShards connects to every address in addrs concurrently (bounded by
// errgroup's default of unlimited goroutines, one per shard — the shard
// count is small and fixed, so no further limiting is needed) and
// attaches each resulting connection to c. If any dial fails, DialShards
// returns the first error and leaves c with whatever connections
// succeeded before the failure was observed.
//
// This concurrent-dial-at-startup step is the only place connections are
// established: per spec §9, a shard connection that drops afterward is
// not automatically redialed, so steady-state routing never creates new
// connections.
func (c *Coordinator) DialShards(ctx context.Context, addrs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	var dialer net.Dialer

	for _, addr := range addrs {
		addr := addr
		g.Go(func() error {
			conn, err := dialer.DialContext(ctx, "tcp", addr)
			if err != nil {
				return fmt.Errorf("coordinator: dial shard %s: %w", addr, err)
			}
			c.AddShard(addr, NewNetShardConn(conn))
			return nil
		})
	}

	return g.Wait()
}
