package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 100*time.Millisecond, cfg.Engine.TickInterval)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 2*time.Second, cfg.Hardware.PollInterval)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
engine:
  tickInterval: 50ms
storage:
  driver: sqlite
  path: /tmp/test.db
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.TickInterval)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o600))

	t.Setenv("SLICKNXT_ADDR", ":7000")
	t.Setenv("SLICKNXT_TICK_INTERVAL", "250")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.TickInterval, "bare integers read as milliseconds")
}

func TestLoad_DurationFormats(t *testing.T) {
	t.Setenv("SLICKNXT_HW_POLL_INTERVAL", "1s")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Hardware.PollInterval)

	t.Setenv("SLICKNXT_HW_POLL_INTERVAL", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("SLICKNXT_STORAGE", "tape")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/does/not/exist.yaml")
		assert.Error(t, err)
	})
}
