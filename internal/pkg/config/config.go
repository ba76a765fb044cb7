package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Audit   AuditConfig
	Login   LoginLimitConfig
	Payment PaymentConfig
	Pass    PassConfig
}

// BackendConfig points at the condominium REST API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://127.0.0.1:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL,     default=24h"`
	Backend      string        `env:"SESSION_BACKEND, default=redis"`
	CookieName   string        `env:"SESSION_COOKIE,  default=condo_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,   default=false"`
	DraftTTL     time.Duration `env:"DRAFT_TTL,       default=15m"`

	// ForceReauthOnUnauthorized clears the session when the backend rejects
	// its token during a dashboard render.
	ForceReauthOnUnauthorized bool `env:"FORCE_REAUTH_ON_UNAUTHORIZED, default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smartcondominium_portal"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=true"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

type LoginLimitConfig struct {
	RatePerSec float64 `env:"LOGIN_RATE_PER_SEC, default=1"`
	Burst      int     `env:"LOGIN_BURST,        default=5"`
}

type PaymentConfig struct {
	PublishableKey string `env:"PAYMENT_PUBLISHABLE_KEY"`
}

type PassConfig struct {
	TimeZone string `env:"PASS_TIMEZONE, default=Local"`
}

const minSecretLen = 32

// Load reads an optional .env file, then the environment. It panics on an
// unusable configuration.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration from l and validates it.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules envconfig tags cannot express.
func (c *Config) Validate() error {
	if len(strings.TrimSpace(c.Session.Secret)) < minSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSecretLen)
	}
	switch c.Session.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("SESSION_BACKEND must be redis or memory, got %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if _, err := c.Pass.Location(); err != nil {
		return fmt.Errorf("PASS_TIMEZONE: %w", err)
	}
	return nil
}

// IsDevelopment enables human readable logs.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Location resolves the zone visitor pass dates are interpreted in.
func (p PassConfig) Location() (*time.Location, error) {
	if p.TimeZone == "" || strings.EqualFold(p.TimeZone, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(p.TimeZone)
}
