package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigYAML = `env: "local"

http_server:
  address: "localhost:9090"
  timeout: 4s
  idle_timeout: 60s

postgres:
  host: "localhost"
  port: 5432
  user: "auth"
  password: "auth"
  dbname: "auth"
  sslmode: "disable"

tokens:
  access_token_ttl: 15m
  refresh_token_ttl: 168h
`

func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestMustLoad(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")

	cfg := MustLoad(writeConfig(t))

	if cfg.HTTPServer.Address != "localhost:9090" {
		t.Fatalf("address: %q", cfg.HTTPServer.Address)
	}
	if cfg.Tokens.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("access ttl: %v", cfg.Tokens.AccessTokenTTL)
	}
	if cfg.Tokens.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("refresh ttl: %v", cfg.Tokens.RefreshTokenTTL)
	}
	if cfg.Tokens.AccessTokenSecret != "access-secret" {
		t.Fatalf("access secret not read from env")
	}
	if cfg.Tokens.RefreshTokenSecret != "refresh-secret" {
		t.Fatalf("refresh secret not read from env")
	}
}

func TestMustLoad_MissingSecret(t *testing.T) {
	// Startup must abort when either token secret is absent.
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	os.Unsetenv("REFRESH_TOKEN_SECRET")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing refresh secret")
		}
	}()

	MustLoad(writeConfig(t))
}

func TestMustLoad_MissingFile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing config file")
		}
	}()

	MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
}
