// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds application configuration.
type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	DatabaseURL    string
	DBMaxConns     int32
	DBMinConns     int32
	MigrateOnStart bool

	// FrontendOrigins lists allowed CORS origins; empty allows any origin
	FrontendOrigins []string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// RateLimit is a ulule formatted rate such as "300-M"; empty disables limiting
	RateLimit string
	RedisURL  string

	OTelEnabled      bool
	OTelEndpoint     string
	OTelInsecure     bool
	OTelSamplerRatio float64

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxChannel      string

	ShutdownTimeout time.Duration
}

// Load reads .env (when present) and the process environment.
// The returned config is validated.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "stocktake")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SAMPLER_RATIO", 1.0)
	v.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	v.SetDefault("OUTBOX_BATCH_SIZE", 100)
	v.SetDefault("OUTBOX_CHANNEL", "stocktake.events")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var errs []error
	duration := func(key string) time.Duration {
		raw := v.GetString(key)
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		}
		return d
	}

	cfg := &Config{
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBMaxConns:         v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:         v.GetInt32("DB_MIN_CONNS"),
		MigrateOnStart:     v.GetBool("MIGRATE_ON_START"),
		FrontendOrigins:    splitOrigins(v.GetString("FRONTEND_URL")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		JWTTTL:             duration("JWT_TTL"),
		RateLimit:          strings.TrimSpace(v.GetString("RATE_LIMIT")),
		RedisURL:           v.GetString("REDIS_URL"),
		OTelEnabled:        v.GetBool("OTEL_ENABLED"),
		OTelEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTelInsecure:       v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
		OTelSamplerRatio:   v.GetFloat64("OTEL_SAMPLER_RATIO"),
		OutboxPollInterval: duration("OUTBOX_POLL_INTERVAL"),
		OutboxBatchSize:    v.GetInt("OUTBOX_BATCH_SIZE"),
		OutboxChannel:      v.GetString("OUTBOX_CHANNEL"),
		ShutdownTimeout:    duration("SHUTDOWN_TIMEOUT"),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("invalid pool size: min=%d max=%d", c.DBMinConns, c.DBMaxConns))
	}
	if c.RateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT: %w", err))
		}
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.OTelSamplerRatio < 0 || c.OTelSamplerRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLER_RATIO must be within [0, 1], got %v", c.OTelSamplerRatio))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("OUTBOX_POLL_INTERVAL must be positive"))
	}
	if c.OutboxBatchSize < 1 {
		errs = append(errs, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// AuthEnabled reports whether bearer tokens are required on the API.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// splitOrigins parses a comma-separated origin list, dropping trailing slashes.
func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
