// Package config loads server configuration from the environment, with an
// optional YAML file overlay.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the SlickNXT server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Engine   EngineConfig   `yaml:"engine"`
	Storage  StorageConfig  `yaml:"storage"`
	Hardware HardwareConfig `yaml:"hardware"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type EngineConfig struct {
	TickInterval time.Duration `yaml:"tickInterval"`
}

type StorageConfig struct {
	// Driver selects the flow store backend: "memory", "sqlite", "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file (sqlite driver only).
	Path string `yaml:"path"`
	// DSN is the connection string (postgres driver only).
	DSN string `yaml:"dsn"`
}

type HardwareConfig struct {
	PollInterval time.Duration `yaml:"pollInterval"`
}

// Load reads configuration from environment variables. A .env file is
// honored when present. If file is non-empty, its YAML contents are applied
// first and the environment overrides them.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server:   ServerConfig{Addr: ":8000"},
		Engine:   EngineConfig{TickInterval: 100 * time.Millisecond},
		Storage:  StorageConfig{Driver: "memory", Path: "slicknxt.db"},
		Hardware: HardwareConfig{PollInterval: 2 * time.Second},
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Server.Addr = getEnvWithDefault("SLICKNXT_ADDR", cfg.Server.Addr)
	cfg.Storage.Driver = getEnvWithDefault("SLICKNXT_STORAGE", cfg.Storage.Driver)
	cfg.Storage.Path = getEnvWithDefault("SLICKNXT_DB_PATH", cfg.Storage.Path)
	cfg.Storage.DSN = getEnvWithDefault("SLICKNXT_DB_DSN", cfg.Storage.DSN)

	var err error
	cfg.Engine.TickInterval, err = getEnvDuration("SLICKNXT_TICK_INTERVAL", cfg.Engine.TickInterval)
	if err != nil {
		return nil, err
	}
	cfg.Hardware.PollInterval, err = getEnvDuration("SLICKNXT_HW_POLL_INTERVAL", cfg.Hardware.PollInterval)
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Engine.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	return nil
}

func getEnvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
