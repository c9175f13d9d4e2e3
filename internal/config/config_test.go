package config

import "testing"

func TestLoadRequiresAccessSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_ACCESS_SECRET is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 5000 {
		t.Errorf("http defaults = %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
	if cfg.Trips.DataDir != "./data/trips" {
		t.Errorf("data dir = %q", cfg.Trips.DataDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("TRIPS_DATA_DIR", "/srv/trips")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Trips.DataDir != "/srv/trips" {
		t.Errorf("data dir = %q", cfg.Trips.DataDir)
	}
}
