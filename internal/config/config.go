package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Events   EventsConfig   `mapstructure:"events"`
	Log      LogConfig      `mapstructure:"log"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	Mode          string `mapstructure:"mode"`            // "development" or "production"
	CORSOrigins   string `mapstructure:"cors_origins"`    // "*" or comma-separated origins
	PublicBaseURL string `mapstructure:"public_base_url"` // Base URL used in upload links
	MaxBodyBytes  int64  `mapstructure:"max_body_bytes"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver           string        `mapstructure:"driver"`            // "sqlite" or "postgres"; inferred from DSN when empty
	DSN              string        `mapstructure:"dsn"`               // Connection string
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`    // Maximum idle connections (Postgres)
	MaxOpenConns     int           `mapstructure:"max_open_conns"`    // Maximum open connections (Postgres)
	ConnMaxLifetime  int           `mapstructure:"conn_max_lifetime"` // Connection max lifetime in minutes (Postgres)
	LogLevel         string        `mapstructure:"log_level"`         // GORM log level, defaults to log.level
	ConnectAttempts  int           `mapstructure:"connect_attempts"`  // 0 retries until the context ends
	ConnectBaseDelay time.Duration `mapstructure:"connect_base_delay"`
	ConnectMaxDelay  time.Duration `mapstructure:"connect_max_delay"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`      // Secret for JWT signing, required
	AdminEmails    string        `mapstructure:"admin_emails"`    // Comma-separated admin allow-list
	TokenDuration  time.Duration `mapstructure:"token_duration"`  // Validity of issued tokens
	IdentityHeader string        `mapstructure:"identity_header"` // Fallback identity header (non-production only)
}

// UploadsConfig holds image upload configuration
type UploadsConfig struct {
	Backend     string `mapstructure:"backend"`    // "local" or "s3"
	Dir         string `mapstructure:"dir"`        // Local directory for uploaded files
	URLPrefix   string `mapstructure:"url_prefix"` // Route prefix the local files are served under
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`   // Optional, enables path-style addressing (MinIO)
	S3PublicURL string `mapstructure:"s3_public_url"` // Public base URL of the bucket
}

// EventsConfig holds change-notification configuration
type EventsConfig struct {
	Backend    string `mapstructure:"backend"` // "none", "valkey" or "nats"
	ValkeyAddr string `mapstructure:"valkey_addr"`
	NATSURL    string `mapstructure:"nats_url"`
	Channel    string `mapstructure:"channel"` // Prefix for published topics
}

// LogConfig holds logging configuration
type LogConfig struct {
	Format string `mapstructure:"format"` // "json" or "text"
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// SeedConfig controls demo data seeding at startup
type SeedConfig struct {
	Demo bool `mapstructure:"demo"`
}

// ErrMissingJWTSecret is returned by Validate when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("auth.jwt_secret is required (set ROOTS_AUTH_JWT_SECRET or JWT_SECRET)")

// legacyEnv maps config keys to the environment names used by earlier deployments.
var legacyEnv = map[string]string{
	"server.port":            "PORT",
	"server.cors_origins":    "CORS_ORIGIN",
	"server.public_base_url": "PUBLIC_BASE_URL",
	"database.dsn":           "DATABASE_URL",
	"auth.jwt_secret":        "JWT_SECRET",
	"auth.admin_emails":      "ADMIN_EMAILS",
	"seed.demo":              "SEED_DEMO",
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	// Set defaults for local development
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("server.public_base_url", "")
	v.SetDefault("server.max_body_bytes", 50<<20)
	v.SetDefault("database.driver", "") // inferred from the DSN when empty
	v.SetDefault("database.dsn", "./roots.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60) // 60 minutes
	v.SetDefault("database.log_level", "")
	v.SetDefault("database.connect_attempts", 0)
	v.SetDefault("database.connect_base_delay", time.Second)
	v.SetDefault("database.connect_max_delay", 30*time.Second)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_emails", "")
	v.SetDefault("auth.token_duration", 7*24*time.Hour)
	v.SetDefault("auth.identity_header", "X-User-ID")
	v.SetDefault("uploads.backend", "local")
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.url_prefix", "/uploads")
	v.SetDefault("uploads.s3_region", "us-east-1")
	v.SetDefault("events.backend", "none")
	v.SetDefault("events.valkey_addr", "localhost:6379")
	v.SetDefault("events.nats_url", "nats://localhost:4222")
	v.SetDefault("events.channel", "roots")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("seed.demo", false)

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/roots/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults
	}

	// Environment variables override
	v.SetEnvPrefix("ROOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "ROOTS_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}
	if err := v.BindEnv("server.mode", "ROOTS_SERVER_MODE", "APP_ENV", "NODE_ENV"); err != nil {
		return nil, fmt.Errorf("error binding server mode: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = InferDriver(cfg.Database.DSN)
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = cfg.Log.Level
	}

	return &cfg, nil
}

// InferDriver picks the database driver for a DSN: postgres for
// postgres:// and postgresql:// URLs, sqlite otherwise.
func InferDriver(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	switch c.Uploads.Backend {
	case "local", "":
	case "s3":
		if c.Uploads.S3Bucket == "" {
			return errors.New("uploads.s3_bucket is required when uploads.backend is s3")
		}
	default:
		return fmt.Errorf("unsupported uploads backend: %s (supported: local, s3)", c.Uploads.Backend)
	}
	return nil
}

// IsProduction reports whether the deployment runs in production mode.
// Relaxed authentication fallbacks are disabled in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Server.Mode), "production")
}

// BaseURL returns the externally visible base URL of the API.
func (c *Config) BaseURL() string {
	if c.Server.PublicBaseURL != "" {
		return strings.TrimRight(c.Server.PublicBaseURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", c.Server.Port)
}
