package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.IsProduction() {
		t.Error("expected development mode by default")
	}
	if cfg.Auth.TokenDuration != 7*24*time.Hour {
		t.Errorf("expected 7 day token duration, got %s", cfg.Auth.TokenDuration)
	}
	if cfg.Auth.IdentityHeader != "X-User-ID" {
		t.Errorf("expected X-User-ID identity header, got %s", cfg.Auth.IdentityHeader)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver by default, got %q", cfg.Database.Driver)
	}
	if cfg.Database.LogLevel != cfg.Log.Level {
		t.Errorf("expected database log level to follow log level, got %q", cfg.Database.LogLevel)
	}
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("ADMIN_EMAILS", "Admin@Example.com")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.JWTSecret != "legacy-secret" {
		t.Errorf("expected legacy secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.AdminEmails != "Admin@Example.com" {
		t.Errorf("expected admin emails, got %q", cfg.Auth.AdminEmails)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode from NODE_ENV")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoad_DatabaseURLSelectsPostgres(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://roots:secret@db:5432/roots?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver inferred from DATABASE_URL, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "postgres://roots:secret@db:5432/roots?sslmode=disable" {
		t.Errorf("unexpected dsn %q", cfg.Database.DSN)
	}
}

func TestLoad_ExplicitDriverWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgresql://db/roots")
	t.Setenv("ROOTS_DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected explicit sqlite driver, got %q", cfg.Database.Driver)
	}
}

func TestInferDriver(t *testing.T) {
	tests := map[string]string{
		"postgres://u@h/db":    "postgres",
		"PostgreSQL://u@h/db":  "postgres",
		"./roots.db":           "sqlite",
		"file:roots.db?cache=": "sqlite",
		"":                     "sqlite",
	}
	for dsn, want := range tests {
		if got := InferDriver(dsn); got != want {
			t.Errorf("InferDriver(%q) = %q, want %q", dsn, got, want)
		}
	}
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("ROOTS_AUTH_JWT_SECRET", "prefixed-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Auth.JWTSecret != "prefixed-secret" {
		t.Errorf("expected prefixed secret, got %q", cfg.Auth.JWTSecret)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "  " }, true},
		{"s3 without bucket", func(c *Config) { c.Uploads.Backend = "s3" }, true},
		{"s3 with bucket", func(c *Config) { c.Uploads.Backend = "s3"; c.Uploads.S3Bucket = "media" }, false},
		{"unknown backend", func(c *Config) { c.Uploads.Backend = "ftp" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Auth:    AuthConfig{JWTSecret: "secret"},
				Uploads: UploadsConfig{Backend: "local"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingSecretSentinel(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Errorf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestBaseURL(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 8080}}
	if got := cfg.BaseURL(); got != "http://localhost:8080" {
		t.Errorf("unexpected default base URL %q", got)
	}

	cfg.Server.PublicBaseURL = "https://shop.example.com/"
	if got := cfg.BaseURL(); got != "https://shop.example.com" {
		t.Errorf("unexpected public base URL %q", got)
	}
}
