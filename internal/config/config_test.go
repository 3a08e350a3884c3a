package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.GinMode != "debug" {
		t.Fatalf("GinMode = %s, want debug", cfg.GinMode)
	}
	if cfg.RedisURL != "redis://127.0.0.1:6379/0" {
		t.Fatalf("RedisURL = %s, want default", cfg.RedisURL)
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("REDIS_URL", "redis://redis:6379/1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SessionSecret != "secret" || cfg.Port != "9090" || cfg.RedisURL != "redis://redis:6379/1" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidateReleaseMode(t *testing.T) {
	cfg := &Config{GinMode: "release", RedisURL: "redis://127.0.0.1:6379/0"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("release mode without SESSION_SECRET should fail validation")
	}

	cfg.SessionSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}
