package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FILMREEL_UPSTREAM_URL
const EnvPrefix = "FILMREEL"

// Load loads the configuration from file, .env and environment. A missing
// config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	// .env only feeds the process environment, it never overrides it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".filmreel"))
		}
		v.AddConfigPath("/etc/filmreel/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("upstream.url", "https://swapi.dev/api/films/")
	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("upstream.user_agent", "filmreel")

	v.SetDefault("fetch.max_retries", 5)
	v.SetDefault("fetch.retry_delay", 5*time.Second)

	v.SetDefault("server.addr", ":4000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.limiter.enabled", true)
	v.SetDefault("server.limiter.rps", 2.0)
	v.SetDefault("server.limiter.burst", 4)

	v.SetDefault("filter.cache_size", 64)
	v.SetDefault("filter.default_expression", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}
	u, err := url.Parse(cfg.Upstream.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("upstream.url must be an absolute http(s) URL: %s", cfg.Upstream.URL)
	}
	if cfg.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}

	if cfg.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries must not be negative: %d", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch.retry_delay must not be negative: %s", cfg.Fetch.RetryDelay)
	}

	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		return fmt.Errorf("invalid server.addr %q: %w", cfg.Server.Addr, err)
	}
	if cfg.Server.Limiter.Enabled && (cfg.Server.Limiter.RPS <= 0 || cfg.Server.Limiter.Burst <= 0) {
		return fmt.Errorf("server.limiter.rps and server.limiter.burst must be positive when the limiter is enabled")
	}

	if cfg.Filter.CacheSize < 0 {
		return fmt.Errorf("filter.cache_size must not be negative: %d", cfg.Filter.CacheSize)
	}
	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter preset %q has no expression", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
