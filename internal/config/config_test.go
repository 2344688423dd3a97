package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadByPath_Defaults(t *testing.T) {
	path := writeConfig(t, "env: test\n")

	cfg, err := LoadByPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Upstream.BaseURL != "https://app.wewantwaste.co.uk" {
		t.Fatalf("unexpected base url: %q", cfg.Upstream.BaseURL)
	}
	if loc := cfg.Upstream.Location(); loc.Postcode != "NR32" || loc.Area != "Lowestoft" {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if cfg.Booking.DeliveryWindowDays != 14 {
		t.Fatalf("unexpected delivery window: %d", cfg.Booking.DeliveryWindowDays)
	}
	if cfg.Booking.MaxSessions != 10000 {
		t.Fatalf("unexpected max sessions: %d", cfg.Booking.MaxSessions)
	}
	if cfg.CatalogCacheTTL != 30*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.CatalogCacheTTL)
	}
	if cfg.HTTP.Address() != "0.0.0.0:8080" {
		t.Fatalf("unexpected http address: %s", cfg.HTTP.Address())
	}
}

func TestLoadByPath_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: prod
http:
  port: 9090
upstream:
  area: Norwich
  timeout: 2s
`)
	t.Setenv("UPSTREAM_AREA", "Yarmouth")

	cfg, err := LoadByPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("unexpected port: %d", cfg.HTTP.Port)
	}
	if cfg.Upstream.Area != "Yarmouth" {
		t.Fatalf("env should override yaml, got %q", cfg.Upstream.Area)
	}
	if cfg.Upstream.Timeout != 2*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Upstream.Timeout)
	}
}

func TestLoadByPath_MissingFile(t *testing.T) {
	if _, err := LoadByPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadByPath_RedisDisabled(t *testing.T) {
	path := writeConfig(t, "env: test\nredis:\n  disabled: true\n")

	cfg, err := LoadByPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Redis.Disabled {
		t.Fatalf("expected redis to be disabled")
	}
	if cfg.Redis.Addr == "" {
		t.Fatalf("expected default redis addr")
	}
}
