package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for fsgen configuration.
const envPrefix = "FSGEN"

// Keys bound to defaults, and therefore to FSGEN_* environment variables.
var boundKeys = []string{
	"log.timestamps",
	"runner.attempts",
	"runner.baseDelay",
	"runner.timeout",
	"runner.packageManager",
	"history.enabled",
	"history.path",
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("log.timestamps", *def.Log.Timestamps)
	v.SetDefault("runner.attempts", def.Runner.Attempts)
	v.SetDefault("runner.baseDelay", def.Runner.BaseDelay)
	v.SetDefault("runner.timeout", def.Runner.Timeout)
	v.SetDefault("runner.packageManager", def.Runner.PackageManager)
	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("history.path", def.History.Path)

	return &Loader{v: v}
}

// Load loads configuration from the given file path. A missing file is not
// an error; defaults and environment variables still apply. Environment
// variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.History.Path, err = ExpandPath(cfg.History.Path); err != nil {
		return nil, fmt.Errorf("expanding history path: %w", err)
	}

	return &cfg, nil
}

// Source reports where the value for key came from.
func (l *Loader) Source(key string) ConfigSource {
	env := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(env); ok {
		return SourceEnv
	}
	if l.v.InConfig(key) {
		return SourceConfig
	}
	return SourceDefault
}

// Resolved returns the resolution of every bound key, for debug logging.
func (l *Loader) Resolved() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(boundKeys))
	for _, key := range boundKeys {
		values = append(values, ResolvedValue{
			Key:    key,
			Value:  l.v.Get(key),
			Source: l.Source(key),
		})
	}
	return values
}
