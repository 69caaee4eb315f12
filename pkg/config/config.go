// pkg/config/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads the engine's runtime parameters: the NMAC
// cylinder, the default step time and look-ahead/recovery windows, and
// the addresses the optional ingestion/metrics services listen on. None
// of this is part of one BandsQuery (spec.md §3) — it's the ambient
// configuration that builds one.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skywatch-systems/daaband/pkg/util"
)

// NMAC holds the near-mid-air-collision cylinder used throughout the
// engine: horizontal radius D and half-height H, both in nautical miles
// and feet respectively by convention, though the core itself is unit
// agnostic.
type NMAC struct {
	D float64 `yaml:"horizontal_radius_nm"`
	H float64 `yaml:"vertical_half_height_ft"`
}

// Windows holds the default primary and recovery conflict-detection
// windows and the sample step time that a BandsQuery is built from.
type Windows struct {
	StepSeconds       float64 `yaml:"step_seconds"`
	LookaheadSeconds   float64 `yaml:"lookahead_seconds"`
	RecoveryBegin      float64 `yaml:"recovery_begin_seconds"`
	RecoveryEnd        float64 `yaml:"recovery_end_seconds"`
	EnableRecovery     bool    `yaml:"enable_recovery"`
}

type IngestConfig struct {
	Enable  bool   `yaml:"enable"`
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
	RedisAddr string `yaml:"redis_addr"`
}

type StoreConfig struct {
	Enable bool   `yaml:"enable"`
	DSN    string `yaml:"postgres_dsn"`
}

type MetricsConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

type Config struct {
	NMAC    NMAC          `yaml:"nmac"`
	Windows Windows       `yaml:"windows"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	LogDir  string        `yaml:"log_dir"`
	LogLevel string       `yaml:"log_level"`
}

// Default returns the configuration the engine runs with if no file is
// given: a 5 nmi / 1000 ft NMAC cylinder, a 1-second step, and a 300
// second primary lookahead, matching the horizontal/vertical separation
// standards conventionally used for en-route DAA.
func Default() Config {
	return Config{
		NMAC: NMAC{D: 5, H: 1000},
		Windows: Windows{
			StepSeconds:     1,
			LookaheadSeconds: 300,
		},
		LogLevel: "info",
	}
}

// Load reads and validates a YAML config file, filling in defaults for
// anything left unset: parse, then fill, then reject what's still
// invalid.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	var el util.ErrorLogger
	el.Push("config")

	el.Push("nmac")
	if cfg.NMAC.D <= 0 || cfg.NMAC.H <= 0 {
		el.ErrorString("horizontal_radius_nm and vertical_half_height_ft must both be positive")
	}
	el.Pop()

	el.Push("windows")
	if cfg.Windows.StepSeconds <= 0 {
		el.ErrorString("step_seconds must be positive")
	}
	if cfg.Windows.LookaheadSeconds < 0 {
		el.ErrorString("lookahead_seconds must be non-negative")
	}
	if cfg.Windows.EnableRecovery && cfg.Windows.RecoveryEnd < cfg.Windows.RecoveryBegin {
		el.ErrorString("recovery_end_seconds must be >= recovery_begin_seconds")
	}
	el.Pop()

	el.Push("ingest")
	if cfg.Ingest.Enable && cfg.Ingest.NATSURL == "" {
		el.ErrorString("nats_url is required when ingest is enabled")
	}
	el.Pop()

	el.Push("store")
	if cfg.Store.Enable && cfg.Store.DSN == "" {
		el.ErrorString("postgres_dsn is required when store is enabled")
	}
	el.Pop()

	el.Pop() // "config"

	if el.HaveErrors() {
		return Config{}, fmt.Errorf("%s", el.String())
	}

	if cfg.Metrics.Enable && cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9110"
	}

	return cfg, nil
}

// StepDuration is a convenience accessor for consumers that want a
// time.Duration rather than a raw float64 seconds count.
func (w Windows) StepDuration() time.Duration {
	return time.Duration(w.StepSeconds * float64(time.Second))
}
