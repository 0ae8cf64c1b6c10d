package paths

import (
	"path/filepath"
	"testing"
)

func TestHomeDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	home, err := HomeDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if home != filepath.Join("/tmp", "test-home") {
		t.Fatalf("expected %s, got %s", filepath.Join("/tmp", "test-home"), home)
	}
}

func TestDefaultDataDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".local", "share", "mindcache")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestGlobalConfigPathUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	path, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".config", "mindcache", "config.toml")
	if path != expected {
		t.Fatalf("expected %s, got %s", expected, path)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	cases := map[string]string{
		"~/notes":   filepath.Join("/tmp", "test-home", "notes"),
		"~":         filepath.Join("/tmp", "test-home"),
		"/abs/path": "/abs/path",
		"~other/x":  "~other/x",
	}
	for input, want := range cases {
		got, err := ExpandHome(input)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ExpandHome(%q): expected %s, got %s", input, want, got)
		}
	}
}
