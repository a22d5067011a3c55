// Package config defines all configuration structures for the Wishwell
// backend.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MongoConfig holds document-store connection parameters.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// RedisConfig holds Redis connection parameters for the rate-limit store.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// FCMConfig holds push-delivery parameters.
type FCMConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	ProjectID       string `mapstructure:"project_id"`
}

// TextGenConfig holds text-generation service parameters.
type TextGenConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// DispatchConfig holds reminder-dispatch pipeline tunables.
type DispatchConfig struct {
	// Schedule is a cron expression for the daily run; the worker also
	// accepts a --once flag for externally triggered runs.
	Schedule        string `mapstructure:"schedule"`
	AccountPageSize int    `mapstructure:"account_page_size"`
	PersonPageSize  int    `mapstructure:"person_page_size"`
}

// GiftConfig holds gift-suggestion pipeline tunables.
type GiftConfig struct {
	// RateLimitMax is the number of requests admitted per account within
	// RateLimitWindow (soft limit under concurrent requests).
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	// DefaultCountry is used when a request carries an unrecognised
	// country code.
	DefaultCountry string `mapstructure:"default_country"`
}

// AuthConfig holds API authentication parameters.
type AuthConfig struct {
	// Tokens maps bearer tokens to account ids.  Suitable for service-to-
	// service deployments; interactive sign-in lives outside this backend.
	Tokens map[string]string `mapstructure:"tokens"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// Config is the root configuration structure for the backend.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	FCM      FCMConfig      `mapstructure:"fcm"`
	TextGen  TextGenConfig  `mapstructure:"textgen"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Gift     GiftConfig     `mapstructure:"gift"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("config: mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("config: mongo.database is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}

	if c.TextGen.BaseURL == "" {
		return fmt.Errorf("config: textgen.base_url is required")
	}
	if c.TextGen.Model == "" {
		return fmt.Errorf("config: textgen.model is required")
	}

	if c.Dispatch.AccountPageSize < 1 {
		return fmt.Errorf("config: dispatch.account_page_size must be ≥ 1, got %d", c.Dispatch.AccountPageSize)
	}
	if c.Dispatch.PersonPageSize < 1 {
		return fmt.Errorf("config: dispatch.person_page_size must be ≥ 1, got %d", c.Dispatch.PersonPageSize)
	}

	if c.Gift.RateLimitMax < 1 {
		return fmt.Errorf("config: gift.rate_limit_max must be ≥ 1, got %d", c.Gift.RateLimitMax)
	}
	if c.Gift.RateLimitWindow <= 0 {
		return fmt.Errorf("config: gift.rate_limit_window must be positive, got %s", c.Gift.RateLimitWindow)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
