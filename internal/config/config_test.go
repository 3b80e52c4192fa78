package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.RateLimit.MaxRequests != 100 {
		t.Errorf("RateLimit.MaxRequests = %d, want 100", cfg.RateLimit.MaxRequests)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("AUTH_JWT_SECRET", "override-secret")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != "9999" {
		t.Errorf("App.Port = %q, want 9999", cfg.App.Port)
	}
	if cfg.Auth.JWTSecret != "override-secret" {
		t.Errorf("Auth.JWTSecret = %q", cfg.Auth.JWTSecret)
	}
	// Unparseable values fall back to the default.
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
}

func TestRateLimitWindow(t *testing.T) {
	if got := (RateLimitConfig{WindowMinutes: 5}).Window(); got != 5*time.Minute {
		t.Errorf("Window() = %v, want 5m", got)
	}
	if got := (RateLimitConfig{}).Window(); got != 15*time.Minute {
		t.Errorf("Window() = %v, want 15m default", got)
	}
}

func TestGoogleEnabled(t *testing.T) {
	full := GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "https://cb"}
	if !full.Enabled() {
		t.Error("Enabled() = false with all credentials set")
	}
	partial := GoogleConfig{ClientID: "id"}
	if partial.Enabled() {
		t.Error("Enabled() = true with missing credentials")
	}
}
