// Package config provides configuration loading and management.
package config

import (
	"time"

	"github.com/fullstack-gen/fsgen/internal/options"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// RunnerConfig controls external commands (install, lint, tests).
type RunnerConfig struct {
	// Attempts is the maximum number of tries per command.
	// Env: FSGEN_RUNNER_ATTEMPTS, Default: 3
	Attempts int `json:"attempts" yaml:"attempts" mapstructure:"attempts"`

	// BaseDelay is the initial backoff between attempts.
	BaseDelay time.Duration `json:"baseDelay" yaml:"baseDelay" mapstructure:"baseDelay"`

	// Timeout bounds a single attempt. Zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// PackageManager is the executable used for install and scripts.
	// Env: FSGEN_RUNNER_PACKAGEMANAGER, Default: npm
	PackageManager string `json:"packageManager" yaml:"packageManager" mapstructure:"packageManager"`
}

// HistoryConfig controls the generation ledger.
type HistoryConfig struct {
	// Enabled turns run recording on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	// Env: FSGEN_HISTORY_PATH, Default: ~/.fsgen/history.db
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config represents the fsgen user configuration.
// Loaded from ~/.fsgen/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Defaults overrides the built-in baseline option set.
	Defaults options.Bag `json:"defaults" yaml:"defaults" mapstructure:"defaults"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`

	Runner  RunnerConfig  `json:"runner" yaml:"runner" mapstructure:"runner"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

// Default values.
const (
	DefaultAttempts       = 3
	DefaultBaseDelay      = 2 * time.Second
	DefaultTimeout        = 10 * time.Minute
	DefaultPackageManager = "npm"
	DefaultHistoryPath    = "~/.fsgen/history.db"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `fsgen config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Timestamps: boolPtr(true)},
		Runner: RunnerConfig{
			Attempts:       DefaultAttempts,
			BaseDelay:      DefaultBaseDelay,
			Timeout:        DefaultTimeout,
			PackageManager: DefaultPackageManager,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    DefaultHistoryPath,
		},
	}
}

// Baseline resolves the configured defaults over the built-in option set.
func (c *Config) Baseline() (options.OptionSet, error) {
	return options.Resolve(c.Defaults, options.Defaults())
}

func boolPtr(b bool) *bool { return &b }
