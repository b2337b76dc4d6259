package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.JWTIssuer != "phone-auth" {
		t.Errorf("JWTIssuer = %q, want phone-auth", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "phone-auth-api" {
		t.Errorf("JWTAudience = %q, want phone-auth-api", cfg.JWTAudience)
	}
	if cfg.AuthCodeReturnToClient {
		t.Error("AuthCodeReturnToClient should default to false")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log defaults = %q/%q, want info/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/auth")
	t.Setenv("JWT_ACCESS_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.DatabaseURL != "postgres://localhost/auth" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if got := cfg.AccessTTL(); got != 5*time.Minute {
		t.Errorf("AccessTTL() = %v, want 5m", got)
	}
}

func TestLoad_EchoCodeRejectedInProduction(t *testing.T) {
	t.Setenv("AUTH_CODE_RETURN_TO_CLIENT", "true")
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should fail when AUTH_CODE_RETURN_TO_CLIENT=true in production")
	}
	if !strings.Contains(err.Error(), "AUTH_CODE_RETURN_TO_CLIENT") {
		t.Errorf("error = %q, should mention AUTH_CODE_RETURN_TO_CLIENT", err)
	}
}

func TestLoad_EchoCodeAllowedInDevelopment(t *testing.T) {
	t.Setenv("AUTH_CODE_RETURN_TO_CLIENT", "true")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.AuthCodeReturnToClient {
		t.Error("AuthCodeReturnToClient should be true")
	}
}

func TestTTLHelpers_InvalidFallBack(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "bogus", JWTRefreshTTL: "-1h", SMSSimulatedDelay: "nope"}
	if got := cfg.AccessTTL(); got != 15*time.Minute {
		t.Errorf("AccessTTL() = %v, want 15m fallback", got)
	}
	if got := cfg.RefreshTTL(); got != 168*time.Hour {
		t.Errorf("RefreshTTL() = %v, want 168h fallback", got)
	}
	if got := cfg.SimulatedDelay(); got != 2*time.Second {
		t.Errorf("SimulatedDelay() = %v, want 2s fallback", got)
	}
}

func TestSimulatedDelay_Zero(t *testing.T) {
	cfg := &Config{SMSSimulatedDelay: "0s"}
	if got := cfg.SimulatedDelay(); got != 0 {
		t.Errorf("SimulatedDelay() = %v, want 0", got)
	}
}
