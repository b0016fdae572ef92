package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected dev default, got %q", cfg.App.Env)
	}
	if cfg.DB.Path != "data/storefront.db" {
		t.Fatalf("unexpected db path %q", cfg.DB.Path)
	}
	if cfg.JWT.ExpirationMinutes != 1440 {
		t.Fatalf("expected 24h token default, got %d", cfg.JWT.ExpirationMinutes)
	}
	if cfg.Backup.Keep != 10 {
		t.Fatalf("expected keep-10 backups, got %d", cfg.Backup.Keep)
	}
	if cfg.Backup.Interval != 6*time.Hour {
		t.Fatalf("expected 6h backup interval, got %s", cfg.Backup.Interval)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis should be disabled without url/addr")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("STOREFRONT_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when jwt secret missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_JWT_SECRET", "test-secret")
	t.Setenv("STOREFRONT_APP_ENV", "prod")
	t.Setenv("STOREFRONT_DB_PATH", "/var/lib/storefront/store.db")
	t.Setenv("STOREFRONT_CORS_ALLOWED_ORIGINS", "https://shop.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.App.IsProd() {
		t.Fatal("expected prod env")
	}
	if cfg.DB.Path != "/var/lib/storefront/store.db" {
		t.Fatalf("unexpected db path %q", cfg.DB.Path)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://shop.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
}
