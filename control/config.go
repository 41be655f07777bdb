// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Configuration model and loader. Values come from defaults, an optional
// YAML/JSON/TOML file and RINGBUF_* environment variables, in increasing
// priority.

package control

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/momentics/hioload-ringbuf/alloc"
)

// EnvPrefix is prepended to environment overrides, e.g. RINGBUF_POOL_THREADS.
const EnvPrefix = "RINGBUF"

// Config represents the application configuration.
type Config struct {
	Pool    PoolConfig    `mapstructure:"pool"`
	Bench   BenchConfig   `mapstructure:"bench"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// PoolConfig sizes the thread-partitioned pool.
type PoolConfig struct {
	Threads         int    `mapstructure:"threads"`         // 0 = runtime.NumCPU()
	InitialCapacity uint32 `mapstructure:"initialCapacity"` // bytes per slot, 0 = lazy
	Allocator       string `mapstructure:"allocator"`       // heap, page
}

// BenchConfig drives the producer/consumer run of cmd/ringbench.
type BenchConfig struct {
	Records int  `mapstructure:"records"` // records per producer
	Reserve bool `mapstructure:"reserve"` // fill every other record through a reservation
	Pin     bool `mapstructure:"pin"`     // pin producer threads to CPUs
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Namespace string `mapstructure:"namespace"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Pool: PoolConfig{
			Allocator: alloc.KindHeap,
		},
		Bench: BenchConfig{
			Records: 100000,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Addr:      ":9090",
			Namespace: "ringbuf",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("pool.threads", d.Pool.Threads)
	v.SetDefault("pool.initialCapacity", d.Pool.InitialCapacity)
	v.SetDefault("pool.allocator", d.Pool.Allocator)
	v.SetDefault("bench.records", d.Bench.Records)
	v.SetDefault("bench.reserve", d.Bench.Reserve)
	v.SetDefault("bench.pin", d.Bench.Pin)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
}

// NewViper returns a viper instance with defaults and env binding applied.
// Callers may bind CLI flags onto it before calling Decode.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configFile (optional) on top of defaults and environment.
func LoadConfig(configFile string) (*Config, error) {
	v := NewViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates the configuration held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Pool.Threads < 0 {
		return fmt.Errorf("pool threads must not be negative")
	}
	switch strings.ToLower(c.Pool.Allocator) {
	case alloc.KindHeap, alloc.KindPage, "mmap":
	default:
		return fmt.Errorf("unknown pool allocator %q", c.Pool.Allocator)
	}
	if c.Bench.Records < 0 {
		return fmt.Errorf("bench records must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics addr must be set when metrics are enabled")
	}
	return nil
}
