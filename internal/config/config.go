// Package config manages environment variables.
//
// It reads variables from the `.env` file (when present), loads them into
// structured Go types and validates that required values are present so
// they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
//
// Nested keys are separated by a double underscore:
//
//	INVOICES_SERVER__PORT          -> server.port
//	INVOICES_DATABASE__SSL_MODE    -> database.ssl_mode
//	INVOICES_INVOICES__DELETE_ENABLED -> invoices.delete_enabled
const EnvPrefix = "INVOICES_"

// ServiceName labels logs, traces and APM dashboards.
const ServiceName = "invoice-dashboard"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from, the
// `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Invoices      InvoicesConfig       `koanf:"invoices"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	MigrateOnStart  bool   `koanf:"migrate_on_start"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig configures the credentials sign-in flow and sessions.
type AuthConfig struct {
	// SessionTTL is how long a session stays valid after sign-in.
	SessionTTL time.Duration `koanf:"session_ttl" validate:"required"`

	// CookieName is the cookie carrying the session token.
	CookieName string `koanf:"cookie_name" validate:"required"`

	// LoginRateLimit is the number of sign-in attempts allowed per second
	// per client IP. Zero disables throttling.
	LoginRateLimit float64 `koanf:"login_rate_limit" validate:"gte=0"`
}

// InvoicesConfig holds switches for the invoice form actions.
type InvoicesConfig struct {
	// DeleteEnabled lifts the guard that makes every delete fail.
	DeleteEnabled bool `koanf:"delete_enabled"`

	// NotifyOnCreate enqueues an email to the customer after a create.
	NotifyOnCreate bool `koanf:"notify_on_create"`
}

// IntegrationConfig stores third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// envKey maps INVOICES_DATABASE__SSL_MODE to database.ssl_mode.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults and returns the result.
func LoadConfig() (*Config, error) {
	// "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}

	// "" unmarshals everything from the root.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Auth.CookieName == "" {
		mainConfig.Auth.CookieName = "session_token"
	}
	if mainConfig.Auth.SessionTTL == 0 {
		mainConfig.Auth.SessionTTL = 24 * time.Hour
	}
	if mainConfig.Integration.EmailFrom == "" {
		mainConfig.Integration.EmailFrom = "Acme Invoices <onboarding@resend.dev>"
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// tracing and logging see consistent naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// IsProduction reports whether the primary environment is production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
