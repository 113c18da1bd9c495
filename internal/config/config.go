// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	LogLevel          slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"json"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Simulator
	TickInterval    time.Duration `env:"SIM_TICK_INTERVAL" envDefault:"5s"`
	PlatformLatency time.Duration `env:"SIM_PLATFORM_LATENCY" envDefault:"500ms"`
	MetricsLatency  time.Duration `env:"SIM_METRICS_LATENCY" envDefault:"300ms"`
	Seed            int64         `env:"SIM_SEED" envDefault:"0"` // 0 = random

	// Snapshots buffered per live stream before the oldest is dropped
	StreamBuffer int `env:"STREAM_BUFFER" envDefault:"4"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TickInterval <= 0 {
		return errors.New("SIM_TICK_INTERVAL must be positive")
	}
	if c.PlatformLatency < 0 || c.MetricsLatency < 0 {
		return errors.New("simulated latencies must not be negative")
	}
	if c.StreamBuffer < 1 {
		return errors.New("STREAM_BUFFER must be at least 1")
	}
	return nil
}
