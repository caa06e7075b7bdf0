// Package config provides configuration management for the parlay builder.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "PARLAY_BUILDER"

// DefaultConfigPath is used when no path is supplied
const DefaultConfigPath = "config/config.yaml"

// ErrMissingKey is returned when a required builder key is absent
var ErrMissingKey = errors.New("required configuration key missing")

// requiredKeys must be present in the file or environment; zero values are not substituted
var requiredKeys = []string{
	"moonshot.target_gross_per_unit",
	"moonshot.max_legs",
	"spray.payout_band",
	"spray.max_legs",
	"spray.max_tickets",
	"filters.min_edge_ratio",
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper(configPath)
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is tolerated; builder keys must then come from the environment.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper(configPath)
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return unmarshal(v)
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigType(configType(configPath))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range requiredKeys {
		// Bind so IsSet sees keys provided only through the environment.
		_ = v.BindEnv(key)
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "parlay-builder")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("slate.path", "slate.csv")
	v.SetDefault("slate.timeout_seconds", 30)
	v.SetDefault("slate.max_retries", 3)
	v.SetDefault("slate.rate_limit", 1.0)
	v.SetDefault("output.dir", ".")
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("cache.max_size", 64)
	v.SetDefault("schedule.rebuild_cron", "*/15 * * * *")
	v.SetDefault("schedule.max_failures", 3)
	v.SetDefault("schedule.failure_window_seconds", 3600)
	v.SetDefault("schedule.cooldown_seconds", 900)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// configType infers the viper config type from the file extension; YAML by default
func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var missing []string
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, strings.Join(missing, ", "))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
