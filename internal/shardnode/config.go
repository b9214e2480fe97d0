package shardnode

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration a shard node may be
// started with via -config, supplying tunables the spec's mandatory
// positional CLI arguments (listen IP and port) don't cover.
type FileConfig struct {
	Capacity  int    `yaml:"capacity"`
	DiskDir   string `yaml:"disk_dir"`
	QueueSize int    `yaml:"queue_size"`
}

// LoadFileConfig reads and parses a YAML file at path. A missing or
// malformed file is always an error — there's no silent fallback, since
// a typo in -config should fail loudly at startup rather than quietly
// run with defaults.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("shardnode: read config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("shardnode: parse config %s: %w", path, err)
	}
	return cfg, nil
}
