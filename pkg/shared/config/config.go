package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Defs     string        `yaml:"defs"` // Optional YAML definition pack
	Bridge   BridgeConfig  `yaml:"bridge"`
	Sandbox  SandboxConfig `yaml:"sandbox"`
}

type BridgeConfig struct {
	Addr  string `yaml:"addr"`
	Path  string `yaml:"path"`
	Scene string `yaml:"scene"`
}

type SandboxConfig struct {
	Scene string `yaml:"scene"`
	Ticks int    `yaml:"ticks"`
	Seed  uint64 `yaml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Bridge: BridgeConfig{
			Addr: BridgeAddr,
			Path: BridgePath,
		},
		Sandbox: SandboxConfig{
			Ticks: 600,
			Seed:  1,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	// Keep zero values from wiping the defaults out
	if cfg.Bridge.Addr == "" {
		cfg.Bridge.Addr = BridgeAddr
	}
	if cfg.Bridge.Path == "" {
		cfg.Bridge.Path = BridgePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Sandbox.Ticks <= 0 {
		cfg.Sandbox.Ticks = 600
	}
	return cfg, nil
}
