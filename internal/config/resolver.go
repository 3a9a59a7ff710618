package config

import (
	"os"

	"github.com/fullstack-gen/fsgen/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and the source it came from.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]any
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) FSGEN_CONFIG env, (3) ~/.fsgen/config.yaml default
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	result := ResolvedValue{
		Key:      "config",
		Shadowed: make(map[ConfigSource]any),
	}

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile
	envValue := os.Getenv(EnvConfig)

	switch {
	case flagValue != "":
		result.Value = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.Value = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// ResolveTimestamps resolves timestamp reporting using precedence:
// (1) --timestamps flag when set, (2) config log.timestamps, (3) default.
func ResolveTimestamps(flagValue *bool, cfg *Config) ResolvedValue {
	result := ResolvedValue{
		Key:      "log.timestamps",
		Value:    true,
		Source:   SourceDefault,
		Shadowed: make(map[ConfigSource]any),
	}

	var configValue *bool
	if cfg != nil {
		configValue = cfg.Log.Timestamps
	}

	switch {
	case flagValue != nil:
		result.Value = *flagValue
		result.Source = SourceFlag
		if configValue != nil {
			result.Shadowed[SourceConfig] = *configValue
		}
	case configValue != nil:
		result.Value = *configValue
		result.Source = SourceConfig
	}

	return result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
