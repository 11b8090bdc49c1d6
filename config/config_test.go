package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.BaseURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected backend base url %q", cfg.Backend.BaseURL)
	}
	if cfg.Auth.LogoutOnUnauthorized() {
		t.Fatalf("expected passthrough 401 policy by default")
	}
	if cfg.Session.SerializeLogin {
		t.Fatalf("expected login serialization off by default")
	}
	wantPaths := []string{"detail", "detail[0].msg", "message"}
	if !reflect.DeepEqual(cfg.Backend.ErrorDetailPaths, wantPaths) {
		t.Fatalf("unexpected detail paths: %#v", cfg.Backend.ErrorDetailPaths)
	}
	if cfg.Session.CookieName != "portal_sid" {
		t.Fatalf("unexpected cookie name %q", cfg.Session.CookieName)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://rag.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("AUTH_UNAUTHORIZED_POLICY", "LOGOUT")
	t.Setenv("SESSION_TOKEN_TTL", "2h")
	t.Setenv("SESSION_SERIALIZE_LOGIN", "true")
	t.Setenv("REDIS_URI", "redis://cache:6379/2")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.BaseURL != "https://rag.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Backend.Timeout)
	}
	if !cfg.Auth.LogoutOnUnauthorized() {
		t.Fatalf("expected logout policy")
	}
	if cfg.Session.TokenTTL != 2*time.Hour || !cfg.Session.SerializeLogin {
		t.Fatalf("unexpected session config: %#v", cfg.Session)
	}
	if cfg.Redis.URI != "redis://cache:6379/2" {
		t.Fatalf("unexpected redis uri %q", cfg.Redis.URI)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
}

func TestUnauthorizedPolicy_UnmarshalText(t *testing.T) {
	var p UnauthorizedPolicy
	if err := p.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("expected error for invalid policy")
	}
	if err := p.UnmarshalText([]byte(" Passthrough ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != UnauthorizedPassthrough {
		t.Fatalf("unexpected policy %q", p)
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{CookieName: " ", KeyPrefix: "", TokenTTL: -1, RegistrySize: 0}
	cfg.Sanitize()

	if cfg.CookieName != "portal_sid" {
		t.Fatalf("expected default cookie name, got %q", cfg.CookieName)
	}
	if cfg.KeyPrefix != "portal:token:" {
		t.Fatalf("expected default key prefix, got %q", cfg.KeyPrefix)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default ttl, got %v", cfg.TokenTTL)
	}
	if cfg.RegistrySize != 1 || cfg.RegistryTTL != 30*time.Minute {
		t.Fatalf("unexpected registry bounds: %d %v", cfg.RegistrySize, cfg.RegistryTTL)
	}
}

func TestBackendConfig_SanitizeDropsBlankPaths(t *testing.T) {
	cfg := BackendConfig{BaseURL: "  ", ErrorDetailPaths: []string{" detail ", "", "  "}}
	cfg.Sanitize()

	if cfg.BaseURL != defaultBackendBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if !reflect.DeepEqual(cfg.ErrorDetailPaths, []string{"detail"}) {
		t.Fatalf("unexpected paths: %#v", cfg.ErrorDetailPaths)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Timeout)
	}
}

func TestAppConfig_LogLevelFallback(t *testing.T) {
	cfg := AppConfig{LogLevel: "VERBOSE"}
	cfg.Sanitize()
	if cfg.LogLevel != "info" {
		t.Fatalf("expected info fallback, got %q", cfg.LogLevel)
	}
}
