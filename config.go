package telecodec

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file-backed configuration surface of the codec tooling.
// Command-line flags override anything set here.
type Config struct {
	MaxPayloadSize int    `yaml:"max_payload_size"` // 0 means DefaultMaxPayload
	Scheme         string `yaml:"scheme"`           // map | schema | struct
	PoolSize       int    `yaml:"pool_size"`
	Workers        int    `yaml:"workers"` // 0 means one per CPU
	OutDir         string `yaml:"out_dir"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		MaxPayloadSize: DefaultMaxPayload,
		Scheme:         CompactStruct.String(),
		PoolSize:       10000,
		OutDir:         ".",
	}
}

// LoadConfig reads a YAML configuration file, filling unset values from
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxPayloadSize == 0 {
		cfg.MaxPayloadSize = DefaultMaxPayload
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return cfg, nil
}
