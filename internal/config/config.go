// Package config provides configuration management for the parlay builder.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Slate    SlateConfig    `mapstructure:"slate" validate:"required"`
	Output   OutputConfig   `mapstructure:"output" validate:"required"`
	Filters  FiltersConfig  `mapstructure:"filters" validate:"required"`
	Moonshot MoonshotConfig `mapstructure:"moonshot" validate:"required"`
	Spray    SprayConfig    `mapstructure:"spray" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SlateConfig describes where the slate is read from
type SlateConfig struct {
	Path           string  `mapstructure:"path" validate:"required"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// OutputConfig represents output table configuration
type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// FiltersConfig represents leg filters shared by both builders
type FiltersConfig struct {
	MinEdgeRatio float64 `mapstructure:"min_edge_ratio" validate:"gte=0"`
}

// MoonshotConfig represents the high-payout builder settings
type MoonshotConfig struct {
	TargetGrossPerUnit float64 `mapstructure:"target_gross_per_unit" validate:"required,gt=1"`
	MaxLegs            int     `mapstructure:"max_legs" validate:"required,gt=0"`
}

// SprayConfig represents the payout-band builder settings
type SprayConfig struct {
	PayoutBand []float64 `mapstructure:"payout_band" validate:"required,len=2,dive,gt=0"`
	MaxLegs    int       `mapstructure:"max_legs" validate:"required,gt=0"`
	MaxTickets int       `mapstructure:"max_tickets" validate:"required,gt=0"`
}

// CacheConfig represents build result caching
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxSize    int `mapstructure:"max_size" validate:"gte=0"`
}

// ScheduleConfig represents watch mode scheduling
type ScheduleConfig struct {
	RebuildCron          string `mapstructure:"rebuild_cron" validate:"omitempty,cron"`
	MaxFailures          int    `mapstructure:"max_failures" validate:"gte=0"`
	FailureWindowSeconds int    `mapstructure:"failure_window_seconds" validate:"gte=0"`
	CooldownSeconds      int    `mapstructure:"cooldown_seconds" validate:"gte=0"`
}

// MetricsConfig represents metrics and health server configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// BandLow returns the lower payout band bound
func (s SprayConfig) BandLow() float64 {
	if len(s.PayoutBand) < 1 {
		return 0
	}
	return s.PayoutBand[0]
}

// BandHigh returns the upper payout band bound
func (s SprayConfig) BandHigh() float64 {
	if len(s.PayoutBand) < 2 {
		return 0
	}
	return s.PayoutBand[1]
}

// SlateTimeout returns the remote fetch timeout
func (c *Config) SlateTimeout() time.Duration {
	return time.Duration(c.Slate.TimeoutSeconds) * time.Second
}

// FailureWindow returns the window over which rebuild failures are counted
func (s ScheduleConfig) FailureWindow() time.Duration {
	return time.Duration(s.FailureWindowSeconds) * time.Second
}

// Cooldown returns how long rebuilds stay paused once the breaker opens
func (s ScheduleConfig) Cooldown() time.Duration {
	return time.Duration(s.CooldownSeconds) * time.Second
}

// CacheTTL returns the build cache TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
