package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const adminAPIPath = "/api/admin"

// Config aggregates runtime configuration for the dashboard gateway.
type Config struct {
	App          AppConfig
	Backend      BackendConfig
	Session      SessionConfig
	Guard        GuardConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Confirmation ConfirmationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"astro-admin"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"3000"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

// BackendConfig points the API client at the admin REST API.
type BackendConfig struct {
	BaseURL        string `env:"ADMIN_API_URL" envDefault:"http://localhost:8000/api/admin"`
	AdminKey       string `env:"ADMIN_API_KEY"`
	TimeoutSeconds int    `env:"ADMIN_API_TIMEOUT_SECONDS" envDefault:"0"`
}

// SessionConfig describes the session cookie.
type SessionConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"admin_token"`
	TTLHours   int    `env:"SESSION_TTL_HOURS" envDefault:"168"`
	LoginPath  string `env:"SESSION_LOGIN_PATH" envDefault:"/login"`
	HomePath   string `env:"SESSION_HOME_PATH" envDefault:"/"`
}

// GuardConfig lists the path prefixes the route guard never inspects.
type GuardConfig struct {
	SkipPrefixes []string `env:"GUARD_SKIP_PREFIXES" envSeparator:"," envDefault:"/api,/static,/_next/static,/_next/image,/favicon.ico,/health"`
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// ConfirmationConfig bounds how long a pending destructive action waits for a decision.
type ConfirmationConfig struct {
	TTLSeconds int `env:"CONFIRMATION_TTL_SECONDS" envDefault:"300"`
}

// Load reads configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Backend.BaseURL = NormalizeBaseURL(cfg.Backend.BaseURL)
	if cfg.Session.TTLHours <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %d", cfg.Session.TTLHours)
	}
	return &cfg, nil
}

// NormalizeBaseURL trims trailing slashes and appends the admin API path when the
// configured URL only names the host.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "http://localhost:8000" + adminAPIPath
	}
	if !strings.Contains(base, adminAPIPath) {
		base += adminAPIPath
	}
	return base
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the upstream client timeout; zero keeps the transport default.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// TTL returns the cookie lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// TTL returns how long confirmation tickets stay valid.
func (c ConfirmationConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}
