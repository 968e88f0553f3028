package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB_SOURCE", "PORT", "JWT_SECRET", "TOKEN_TTL", "GRPC_ADDRESS", "REDIS_ADDR", "CORS_ORIGINS", "ALLOW_ADMIN_REGISTRATION"} {
		os.Unsetenv(k)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Database.Path != "movies.db" || cfg.HTTP.Address() != ":3000" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != time.Hour || !cfg.Auth.AllowAdminRegistration {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.GRPC.Address != "" || cfg.Redis.Addr != "" {
		t.Fatalf("optional listeners should default off: %+v", cfg)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_SOURCE", "test.db")
	t.Setenv("PORT", "1234")
	if _, err := Load(); !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
	t.Setenv("JWT_SECRET", "short")
	if _, err := Load(); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret for short secret, got %v", err)
	}
	t.Setenv("JWT_SECRET", legacySecret)
	if _, err := Load(); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret for placeholder, got %v", err)
	}
	t.Setenv("JWT_SECRET", "a-perfectly-fine-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
	if cfg.Database.Path != "test.db" || cfg.HTTP.Address() != ":1234" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "JWT_SECRET=secret-from-dotenv-file\nTOKEN_TTL=30m\nCORS_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("TOKEN_TTL")
		os.Unsetenv("CORS_ORIGINS")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "secret-from-dotenv-file" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("dotenv values not applied: %+v", cfg.Auth)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins: %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "a-perfectly-fine-secret")
	t.Setenv("TOKEN_TTL", "-5m")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative TOKEN_TTL")
	}
}

func TestString_MasksSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "a-perfectly-fine-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s := cfg.String(); strings.Contains(s, "a-perfectly-fine-secret") {
		t.Fatalf("secret leaked in %q", s)
	}
}
