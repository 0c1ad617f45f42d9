package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BridgeAddr, cfg.Bridge.Addr)
	assert.Equal(t, 600, cfg.Sandbox.Ticks)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
defs: data/defs/goblins.yaml
bridge:
  addr: "127.0.0.1:9000"
  scene: data/scenes/yard.json
sandbox:
  seed: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "data/defs/goblins.yaml", cfg.Defs)
	assert.Equal(t, "127.0.0.1:9000", cfg.Bridge.Addr)
	assert.Equal(t, BridgePath, cfg.Bridge.Path, "unset keys keep their defaults")
	assert.Equal(t, "data/scenes/yard.json", cfg.Bridge.Scene)
	assert.Equal(t, uint64(42), cfg.Sandbox.Seed)
	assert.Equal(t, 600, cfg.Sandbox.Ticks)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "bridge: [1, 2"))
	assert.ErrorContains(t, err, "parse config")
}
