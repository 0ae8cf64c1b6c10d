package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/mindcache/internal/config"
	"github.com/amonks/mindcache/internal/testsupport"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	t.Setenv("USER", "ada")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Backend != config.BackendFile {
		t.Fatalf("expected file backend, got %q", cfg.Store.Backend)
	}
	if want := filepath.Join(home, ".local", "share", "mindcache"); cfg.Store.Path != want {
		t.Fatalf("expected store path %q, got %q", want, cfg.Store.Path)
	}
	if cfg.User.Owner != "ada" {
		t.Fatalf("expected owner ada, got %q", cfg.User.Owner)
	}
	if cfg.Display.Color != "auto" {
		t.Fatalf("expected auto color, got %q", cfg.Display.Color)
	}
	if cfg.Web.Addr != "127.0.0.1:8080" {
		t.Fatalf("expected default addr, got %q", cfg.Web.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected info level, got %q", cfg.Log.Level)
	}
}

func TestLoad_OwnerFallback(t *testing.T) {
	testsupport.SetupTestHome(t)
	t.Setenv("USER", "")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.User.Owner != "local" {
		t.Fatalf("expected owner local, got %q", cfg.User.Owner)
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), `
[store]
backend = "redis"
redis-url = "redis://localhost:6379/2"

[user]
owner = "grace"

[display]
width = 72
color = "never"

[web]
addr = ":9000"

[log]
level = "debug"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Backend != config.BackendRedis {
		t.Fatalf("expected redis backend, got %q", cfg.Store.Backend)
	}
	if cfg.Store.RedisURL != "redis://localhost:6379/2" {
		t.Fatalf("expected redis url, got %q", cfg.Store.RedisURL)
	}
	if cfg.User.Owner != "grace" {
		t.Fatalf("expected owner grace, got %q", cfg.User.Owner)
	}
	if cfg.Display.Width != 72 {
		t.Fatalf("expected width 72, got %d", cfg.Display.Width)
	}
	if cfg.Display.Color != "never" {
		t.Fatalf("expected never color, got %q", cfg.Display.Color)
	}
	if cfg.Web.Addr != ":9000" {
		t.Fatalf("expected addr :9000, got %q", cfg.Web.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), "[store\nbackend = ")

	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_MergesGlobalAndProject(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "mindcache", "config.toml"), `
[store]
path = "~/notes"

[user]
owner = "global-owner"

[display]
width = 100
`)
	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), `
[user]
owner = "project-owner"

[display]
width = 0
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if want := filepath.Join(home, "notes"); cfg.Store.Path != want {
		t.Fatalf("expected global store path %q, got %q", want, cfg.Store.Path)
	}
	if cfg.User.Owner != "project-owner" {
		t.Fatalf("expected project owner, got %q", cfg.User.Owner)
	}
	if cfg.Display.Width != 0 {
		t.Fatalf("expected project width 0 to override, got %d", cfg.Display.Width)
	}
}

func TestLoad_EnvConfigPath(t *testing.T) {
	testsupport.SetupTestHome(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[user]\nowner = \"from-env\"\n")
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.User.Owner != "from-env" {
		t.Fatalf("expected owner from-env, got %q", cfg.User.Owner)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "[store]\nbackend = \"mongo\"\n", "unknown store backend"},
		{"redis without url", "[store]\nbackend = \"redis\"\n", "requires redis-url"},
		{"postgres without dsn", "[store]\nbackend = \"postgres\"\n", "requires postgres-dsn"},
		{"bad color", "[display]\ncolor = \"sometimes\"\n", "unknown display color"},
		{"negative width", "[display]\nwidth = -1\n", "must not be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testsupport.SetupTestHome(t)
			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, config.ProjectFile), tc.content)

			_, err := config.Load(tmpDir)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_UnknownBackendIsTyped(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, config.ProjectFile), "[store]\nbackend = \"mongo\"\n")

	_, err := config.Load(tmpDir)
	if !errors.Is(err, config.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if want := `"mongo" (valid: file, redis, postgres)`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected %q in %q", want, err.Error())
	}
}
