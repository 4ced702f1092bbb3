// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort                = 8080
	defaultServerHost                = "0.0.0.0"
	defaultReadTimeout               = 30 * time.Second
	defaultWriteTimeout              = 30 * time.Second
	defaultDatabasePath              = "./data/telecast.db"
	defaultDatabaseConnectionTimeout = 5 * time.Second
	defaultLogLevel                  = "info"
	defaultLogPretty                 = false
	defaultNewsCacheTTL              = 15 * time.Minute
	defaultChannelCacheTTL           = time.Hour
	defaultFetchTimeout              = 5 * time.Second
	defaultFetchPerMinute            = 30
	defaultFetchBreakerThreshold     = 3
	defaultFetchBreakerReset         = 2 * time.Minute
	defaultFallbackVideoDuration     = 300 * time.Second
	envPrefix                        = "TELECAST"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Cache    CacheConfig
	Fetch    FetchConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Path              string
	ConnectionTimeout time.Duration
	EnableWAL         bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig holds playlist cache durations. The TTLs are tunable rather
// than contractual: freshness need varies by channel kind, so news-style
// channels refresh faster than ordinary or custom ones.
type CacheConfig struct {
	NewsTTL    time.Duration
	DefaultTTL time.Duration
}

// FetchConfig bounds the upstream content fetcher: per-call timeout, a
// quota-protecting rate limit, circuit breaker tuning, and the duration
// assumed for feed items that carry no explicit length.
type FetchConfig struct {
	Timeout          time.Duration
	PerMinute        int
	BreakerThreshold int
	BreakerReset     time.Duration
	DefaultDuration  time.Duration
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/telecast")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)

	// Database defaults
	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("database.connectiontimeout", defaultDatabaseConnectionTimeout)
	v.SetDefault("database.enablewal", true)

	// Logging defaults
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	// Cache defaults
	v.SetDefault("cache.newsttl", defaultNewsCacheTTL)
	v.SetDefault("cache.defaultttl", defaultChannelCacheTTL)

	// Fetch defaults
	v.SetDefault("fetch.timeout", defaultFetchTimeout)
	v.SetDefault("fetch.perminute", defaultFetchPerMinute)
	v.SetDefault("fetch.breakerthreshold", defaultFetchBreakerThreshold)
	v.SetDefault("fetch.breakerreset", defaultFetchBreakerReset)
	v.SetDefault("fetch.defaultduration", defaultFallbackVideoDuration)
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %v (must be > 0)", c.Server.WriteTimeout)
	}
	if c.Database.ConnectionTimeout <= 0 {
		return fmt.Errorf("invalid database connection timeout: %v (must be > 0)", c.Database.ConnectionTimeout)
	}

	if c.Cache.NewsTTL <= 0 {
		return fmt.Errorf("invalid news cache TTL: %v (must be > 0)", c.Cache.NewsTTL)
	}
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("invalid default cache TTL: %v (must be > 0)", c.Cache.DefaultTTL)
	}

	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid fetch timeout: %v (must be > 0)", c.Fetch.Timeout)
	}
	if c.Fetch.PerMinute < 1 {
		return fmt.Errorf("invalid fetch rate: %d per minute (must be >= 1)", c.Fetch.PerMinute)
	}
	if c.Fetch.DefaultDuration <= 0 {
		return fmt.Errorf("invalid default video duration: %v (must be > 0)", c.Fetch.DefaultDuration)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
