// Package config loads and validates pinormal settings from file,
// environment, and defaults.
package config

import "errors"

// Config is the top-level configuration struct for pinormal.
// Field tags use mapstructure for viper unmarshalling and yaml for the
// `config init` writer.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"  yaml:"engine"`
	Stats   StatsConfig   `mapstructure:"stats"   yaml:"stats"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// EngineConfig holds the computation policy knobs.
type EngineConfig struct {
	// StartBatchTerms is the series term count of the first batch.
	StartBatchTerms int `mapstructure:"start_batch_terms" yaml:"start_batch_terms"`

	// MaxBatchTerms caps the geometric batch growth.
	MaxBatchTerms int `mapstructure:"max_batch_terms" yaml:"max_batch_terms"`

	// GuardDigits is the extraction guard margin.
	GuardDigits int `mapstructure:"guard_digits" yaml:"guard_digits"`

	// MaxDigits stops the run after this many digits; 0 is unbounded.
	MaxDigits int `mapstructure:"max_digits" yaml:"max_digits"`
}

// StatsConfig holds statistics retention knobs.
type StatsConfig struct {
	HistoryCap   int `mapstructure:"history_cap"   yaml:"history_cap"`
	RecentWindow int `mapstructure:"recent_window" yaml:"recent_window"`
	FirstWindow  int `mapstructure:"first_window"  yaml:"first_window"`
}

// DisplayConfig holds dashboard rendering knobs.
type DisplayConfig struct {
	// RefreshMS is the draw interval in milliseconds.
	RefreshMS int `mapstructure:"refresh_ms" yaml:"refresh_ms"`

	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// MetricsConfig holds the optional diagnostics endpoint settings.
type MetricsConfig struct {
	// ListenAddr enables the /metrics endpoint when non-empty,
	// e.g. "127.0.0.1:9464".
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidStartBatch indicates the starting batch size is not positive.
	ErrInvalidStartBatch = errors.New("engine.start_batch_terms must be positive")
	// ErrInvalidMaxBatch indicates the batch cap is below the starting size.
	ErrInvalidMaxBatch = errors.New("engine.max_batch_terms must be at least engine.start_batch_terms")
	// ErrGuardTooSmall indicates the guard margin cannot cover one series term.
	ErrGuardTooSmall = errors.New("engine.guard_digits must be at least 16")
	// ErrInvalidMaxDigits indicates a negative digit limit.
	ErrInvalidMaxDigits = errors.New("engine.max_digits must be non-negative")
	// ErrInvalidHistoryCap indicates the history cap is not positive.
	ErrInvalidHistoryCap = errors.New("stats.history_cap must be positive")
	// ErrInvalidRecentWindow indicates the recent window is too small to trim.
	ErrInvalidRecentWindow = errors.New("stats.recent_window must be greater than 200")
	// ErrInvalidFirstWindow indicates the first window is not positive.
	ErrInvalidFirstWindow = errors.New("stats.first_window must be positive")
	// ErrInvalidRefresh indicates the refresh interval is not positive.
	ErrInvalidRefresh = errors.New("display.refresh_ms must be positive")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	engineErr := c.validateEngine()
	if engineErr != nil {
		return engineErr
	}

	return c.validateStats()
}

func (c *Config) validateEngine() error {
	if c.Engine.StartBatchTerms <= 0 {
		return ErrInvalidStartBatch
	}

	if c.Engine.MaxBatchTerms < c.Engine.StartBatchTerms {
		return ErrInvalidMaxBatch
	}

	if c.Engine.GuardDigits < minGuardDigits {
		return ErrGuardTooSmall
	}

	if c.Engine.MaxDigits < 0 {
		return ErrInvalidMaxDigits
	}

	return nil
}

func (c *Config) validateStats() error {
	if c.Stats.HistoryCap <= 0 {
		return ErrInvalidHistoryCap
	}

	if c.Stats.RecentWindow <= minRecentWindow {
		return ErrInvalidRecentWindow
	}

	if c.Stats.FirstWindow <= 0 {
		return ErrInvalidFirstWindow
	}

	if c.Display.RefreshMS <= 0 {
		return ErrInvalidRefresh
	}

	return nil
}
