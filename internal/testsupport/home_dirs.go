package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// EnsureHomeDirs creates the default config and data directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "mindcache"), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "share", "mindcache"), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// SetupTestHome creates a temp home directory, ensures mindcache dirs, and
// points HOME at it. MINDCACHE_CONFIG is cleared so the home config is used.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MINDCACHE_CONFIG", "")
	return homeDir
}
