// Package paths resolves mindcache's default file locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultDataDir returns the default directory of the file store.
func DefaultDataDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "mindcache"), nil
}

// GlobalConfigPath returns the per-user configuration file path.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindcache", "config.toml"), nil
}

// ExpandHome replaces a leading "~/" with the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
