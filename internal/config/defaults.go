package config

import "time"

const (
	DefaultServerPort = 8080

	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "wishwell"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "wishwell:"

	DefaultTextGenBaseURL = "http://localhost:8000/v1"
	DefaultTextGenModel   = "gemini-1.5-flash"

	// DefaultDispatchSchedule fires once per day at 08:00; the deployment's
	// scheduler timezone decides what 08:00 means.
	DefaultDispatchSchedule = "0 8 * * *"
	DefaultAccountPageSize  = 100
	DefaultPersonPageSize   = 200

	DefaultGiftRateLimitMax = 10
	DefaultGiftCountry      = "AU"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultGiftRateLimitWindow is the trailing window for the gift
// suggestion limiter.
const DefaultGiftRateLimitWindow = 24 * time.Hour

// ApplyDefaults fills every zero-value field in cfg with the backend
// default.  Fields already set by the caller are left unchanged so explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = DefaultMongoURI
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = DefaultMongoDatabase
	}
	if cfg.Mongo.ConnectTimeout == 0 {
		cfg.Mongo.ConnectTimeout = 10 * time.Second
	}
	if cfg.Mongo.MaxPoolSize == 0 {
		cfg.Mongo.MaxPoolSize = 50
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}

	if cfg.TextGen.BaseURL == "" {
		cfg.TextGen.BaseURL = DefaultTextGenBaseURL
	}
	if cfg.TextGen.Model == "" {
		cfg.TextGen.Model = DefaultTextGenModel
	}
	if cfg.TextGen.Timeout == 0 {
		cfg.TextGen.Timeout = 60 * time.Second
	}
	if cfg.TextGen.MaxTokens == 0 {
		cfg.TextGen.MaxTokens = 1024
	}

	if cfg.Dispatch.Schedule == "" {
		cfg.Dispatch.Schedule = DefaultDispatchSchedule
	}
	if cfg.Dispatch.AccountPageSize == 0 {
		cfg.Dispatch.AccountPageSize = DefaultAccountPageSize
	}
	if cfg.Dispatch.PersonPageSize == 0 {
		cfg.Dispatch.PersonPageSize = DefaultPersonPageSize
	}

	if cfg.Gift.RateLimitMax == 0 {
		cfg.Gift.RateLimitMax = DefaultGiftRateLimitMax
	}
	if cfg.Gift.RateLimitWindow == 0 {
		cfg.Gift.RateLimitWindow = DefaultGiftRateLimitWindow
	}
	if cfg.Gift.DefaultCountry == "" {
		cfg.Gift.DefaultCountry = DefaultGiftCountry
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
