// Package command parses and executes the text command grammar a shard
// node accepts: set, get, and stats. It is the Go counterpart of the
// original DHT's handle_command/handle_commands pair, rebuilt against
// the cache.Engine API instead of a direct HashTable reference.
package command

import (
	"encoding/json"
	"regexp"

	"github.com/parthgangar/shardkv/internal/cache"
)

var (
	setPattern = regexp.MustCompile(`^set ([A-Za-z0-9]+) ([A-Za-z0-9]+)$`)
	getPattern = regexp.MustCompile(`^get ([A-Za-z0-9]+)$`)
)

// ErrInvalid is the literal response text for anything that doesn't match
// the set/get/stats grammar, including well-formed commands on keys or
// values containing characters outside [A-Za-z0-9].
const ErrInvalid = "Error: Invalid command"

// ErrMissingKey is the literal response text for a get on a key the
// engine has no record of, in either tier.
const ErrMissingKey = "Error: Non existent key"

// Execute runs a single command line against engine and returns its
// textual result, exactly as the `stats`/`set`/`get` commands do in the
// wire protocol: no error is ever returned to the caller, malformed or
// unknown input produces ErrInvalid inline.
func Execute(engine *cache.Engine, line string) string {
	switch {
	case line == "stats":
		return statsJSON(engine.Stats())

	case setPattern.MatchString(line):
		m := setPattern.FindStringSubmatch(line)
		engine.Put(m[1], m[2])
		return "Inserted"

	case getPattern.MatchString(line):
		m := getPattern.FindStringSubmatch(line)
		value, ok := engine.Get(m[1])
		if !ok {
			return ErrMissingKey
		}
		return value

	default:
		return ErrInvalid
	}
}

// ExecuteAll runs each line in commands through Execute in order,
// mirroring handle_commands's sequential, non-concurrent fan-out over a
// single frame's worth of commands.
func ExecuteAll(engine *cache.Engine, commands []string) []string {
	results := make([]string, len(commands))
	for i, line := range commands {
		results[i] = Execute(engine, line)
	}
	return results
}

func statsJSON(stats cache.Stats) string {
	data, err := json.Marshal(stats)
	if err != nil {
		// Stats is a flat struct of floats and uint64s; Marshal only
		// fails here if that invariant is broken.
		return ErrInvalid
	}
	return string(data)
}
