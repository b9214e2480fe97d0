package coordinator

import (
	"encoding/json"
	"regexp"
)

var (
	setPattern = regexp.MustCompile(`^set ([A-Za-z0-9]+) ([A-Za-z0-9]+)$`)
	getPattern = regexp.MustCompile(`^get ([A-Za-z0-9]+)$`)
)

// invalidCommand is the literal the coordinator returns for anything
// that doesn't match set/get/stats, without consulting any shard — the
// same ungrounded-request behavior as forward_request_to_server's final
// else branch.
const invalidCommand = "Error: Invalid command"

// shardStats mirrors the JSON shape cache.Stats serializes, duplicated
// here rather than imported so this package depends only on encoding
// wire formats, not on the cache package's internals.
type shardStats struct {
	HitRate       float64 `json:"hit_rate"`
	ReadRequests  uint64  `json:"read_requests"`
	WriteRequests uint64  `json:"write_requests"`
	CacheReadTime float64 `json:"cache_read_time"`
	DiskReadTime  float64 `json:"disk_read_time"`
}

// AggregateJSON parses each shard's stats JSON response and combines
// them exactly as the original coordinator's aggregate_stats does: sum
// every field except hit_rate, which is the arithmetic mean across
// shards. An empty responses slice aggregates to all-zero fields.
func AggregateJSON(responses []string) (string, error) {
	var agg shardStats
	for _, raw := range responses {
		var s shardStats
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return "", err
		}
		agg.HitRate += s.HitRate
		agg.ReadRequests += s.ReadRequests
		agg.WriteRequests += s.WriteRequests
		agg.CacheReadTime += s.CacheReadTime
		agg.DiskReadTime += s.DiskReadTime
	}
	if n := len(responses); n > 0 {
		agg.HitRate /= float64(n)
	}

	out, err := json.Marshal(agg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
