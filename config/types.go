package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Server   ServerConfig   `mapstructure:"server"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// UpstreamConfig holds the film listing endpoint details
type UpstreamConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// FetchConfig controls the retry behaviour of a fetch
type FetchConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Limiter         LimiterConfig `mapstructure:"limiter"`
}

// LimiterConfig configures per-client rate limiting
type LimiterConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// FilterConfig contains filter expression settings
type FilterConfig struct {
	CacheSize         int                     `mapstructure:"cache_size"`
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]FilterPreset `mapstructure:"presets"`
}

// FilterPreset is a named, reusable filter expression
type FilterPreset struct {
	Description string `mapstructure:"description"`
	Expression  string `mapstructure:"expression"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
