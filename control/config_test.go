// File: control/config_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("RINGBUF_POOL_THREADS", "6")
	t.Setenv("RINGBUF_POOL_ALLOCATOR", "page")
	t.Setenv("RINGBUF_BENCH_RESERVE", "true")
	t.Setenv("RINGBUF_METRICS_NAMESPACE", "bench")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Pool.Threads)
	assert.Equal(t, "page", cfg.Pool.Allocator)
	assert.True(t, cfg.Bench.Reserve)
	assert.Equal(t, "bench", cfg.Metrics.Namespace)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringbench.yaml")
	content := `
pool:
  threads: 2
  initialCapacity: 4096
bench:
  records: 10
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("RINGBUF_BENCH_RECORDS", "20")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Pool.Threads)
	assert.Equal(t, uint32(4096), cfg.Pool.InitialCapacity)
	assert.Equal(t, 20, cfg.Bench.Records, "environment wins over the file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "heap", cfg.Pool.Allocator)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative threads":  func(c *Config) { c.Pool.Threads = -1 },
		"unknown allocator": func(c *Config) { c.Pool.Allocator = "slab" },
		"negative records":  func(c *Config) { c.Bench.Records = -5 },
		"bad level":         func(c *Config) { c.Log.Level = "loud" },
		"metrics no addr": func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Addr = ""
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)

	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("verbose")
	assert.Error(t, err)
}
