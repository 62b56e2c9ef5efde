package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Source   ServerConfig
	Target   ServerConfig
	Provider ProviderConfig
	Launch   LaunchConfig
	Session  SessionConfig
	Ledger   LedgerConfig
	Audit    AuditConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings for one application.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// ProviderConfig holds the shared identity provider settings. The
// private key arrives newline-escaped from the environment and is
// unescaped on read.
type ProviderConfig struct {
	ProjectID   string `mapstructure:"project_id"`
	ClientEmail string `mapstructure:"client_email"`
	PrivateKey  string `mapstructure:"private_key"`
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
}

// Validate checks that every security-relevant provider value is
// present. These are never defaulted.
func (p *ProviderConfig) Validate() error {
	var missing []string
	if p.ProjectID == "" {
		missing = append(missing, "provider.project_id")
	}
	if p.ClientEmail == "" {
		missing = append(missing, "provider.client_email")
	}
	if p.PrivateKey == "" {
		missing = append(missing, "provider.private_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required provider configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PEMPrivateKey returns the service-account private key with escaped
// newlines restored.
func (p *ProviderConfig) PEMPrivateKey() string {
	return strings.ReplaceAll(p.PrivateKey, `\n`, "\n")
}

// LaunchConfig holds cross-application settings for the session
// bootstrap client. TargetBaseURL may be empty; the launch action then
// refuses to run with a visible error.
type LaunchConfig struct {
	TargetBaseURL string `mapstructure:"target_base_url"`
	TargetApp     string `mapstructure:"target_app"`
	SourceURL     string `mapstructure:"source_url"`
}

// SessionConfig holds target-app session cookie settings.
type SessionConfig struct {
	Secret       string        `mapstructure:"secret"`
	Issuer       string        `mapstructure:"issuer"`
	TTL          time.Duration `mapstructure:"ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// LedgerConfig holds consumption ledger settings.
type LedgerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuditConfig holds audit store settings.
type AuditConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string for the audit store.
func (a *AuditConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		a.User, a.Password, a.Host, a.Port, a.Name, a.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the
// CROSSGATE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CROSSGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("source.port", ":8080")
	v.SetDefault("source.read_timeout", "15s")
	v.SetDefault("source.write_timeout", "15s")
	v.SetDefault("source.environment", "development")
	v.SetDefault("target.port", ":8081")
	v.SetDefault("target.read_timeout", "15s")
	v.SetDefault("target.write_timeout", "15s")
	v.SetDefault("target.environment", "development")

	// Provider defaults. Credentials have no defaults on purpose.
	v.SetDefault("provider.project_id", "")
	v.SetDefault("provider.client_email", "")
	v.SetDefault("provider.private_key", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.base_url", "https://identitytoolkit.googleapis.com")

	// Launch defaults
	v.SetDefault("launch.target_base_url", "")
	v.SetDefault("launch.target_app", "")
	v.SetDefault("launch.source_url", "http://localhost:8080")

	// Session defaults
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.issuer", "crossgate")
	v.SetDefault("session.ttl", "1h")
	v.SetDefault("session.cookie_secure", false)

	// Ledger defaults
	v.SetDefault("ledger.enabled", false)
	v.SetDefault("ledger.addr", "localhost:6379")
	v.SetDefault("ledger.password", "")
	v.SetDefault("ledger.db", 0)

	// Audit defaults
	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.host", "localhost")
	v.SetDefault("audit.port", 5432)
	v.SetDefault("audit.user", "crossgate")
	v.SetDefault("audit.password", "crossgate_secret")
	v.SetDefault("audit.name", "crossgate_db")
	v.SetDefault("audit.sslmode", "disable")
	v.SetDefault("audit.max_open", 25)
	v.SetDefault("audit.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"source.port":            "CROSSGATE_SOURCE_PORT",
		"source.read_timeout":    "CROSSGATE_SOURCE_READ_TIMEOUT",
		"source.write_timeout":   "CROSSGATE_SOURCE_WRITE_TIMEOUT",
		"source.environment":     "CROSSGATE_SOURCE_ENVIRONMENT",
		"target.port":            "CROSSGATE_TARGET_PORT",
		"target.read_timeout":    "CROSSGATE_TARGET_READ_TIMEOUT",
		"target.write_timeout":   "CROSSGATE_TARGET_WRITE_TIMEOUT",
		"target.environment":     "CROSSGATE_TARGET_ENVIRONMENT",
		"provider.project_id":    "CROSSGATE_PROVIDER_PROJECT_ID",
		"provider.client_email":  "CROSSGATE_PROVIDER_CLIENT_EMAIL",
		"provider.private_key":   "CROSSGATE_PROVIDER_PRIVATE_KEY",
		"provider.api_key":       "CROSSGATE_PROVIDER_API_KEY",
		"provider.base_url":      "CROSSGATE_PROVIDER_BASE_URL",
		"launch.target_base_url": "CROSSGATE_LAUNCH_TARGET_BASE_URL",
		"launch.target_app":      "CROSSGATE_LAUNCH_TARGET_APP",
		"launch.source_url":      "CROSSGATE_LAUNCH_SOURCE_URL",
		"session.secret":         "CROSSGATE_SESSION_SECRET",
		"session.issuer":         "CROSSGATE_SESSION_ISSUER",
		"session.ttl":            "CROSSGATE_SESSION_TTL",
		"session.cookie_secure":  "CROSSGATE_SESSION_COOKIE_SECURE",
		"ledger.enabled":         "CROSSGATE_LEDGER_ENABLED",
		"ledger.addr":            "CROSSGATE_LEDGER_ADDR",
		"ledger.password":        "CROSSGATE_LEDGER_PASSWORD",
		"ledger.db":              "CROSSGATE_LEDGER_DB",
		"audit.enabled":          "CROSSGATE_AUDIT_ENABLED",
		"audit.host":             "CROSSGATE_AUDIT_HOST",
		"audit.port":             "CROSSGATE_AUDIT_PORT",
		"audit.user":             "CROSSGATE_AUDIT_USER",
		"audit.password":         "CROSSGATE_AUDIT_PASSWORD",
		"audit.name":             "CROSSGATE_AUDIT_NAME",
		"audit.sslmode":          "CROSSGATE_AUDIT_SSLMODE",
		"audit.max_open":         "CROSSGATE_AUDIT_MAX_OPEN",
		"audit.max_idle":         "CROSSGATE_AUDIT_MAX_IDLE",
		"log.level":              "CROSSGATE_LOG_LEVEL",
		"log.format":             "CROSSGATE_LOG_FORMAT",
		"cors.allowed_origins":   "CROSSGATE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated origins arrive as a single string from env.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	return &cfg, nil
}
