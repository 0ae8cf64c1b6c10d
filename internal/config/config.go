// Package config handles loading mindcache.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/mindcache/internal/paths"
	"github.com/amonks/mindcache/internal/validation"
)

// ProjectFile is the name of the per-directory configuration file.
const ProjectFile = "mindcache.toml"

// EnvConfigPath overrides the location of the global configuration file.
const EnvConfigPath = "MINDCACHE_CONFIG"

// Backend names.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var (
	// ErrUnknownBackend indicates a store backend other than the known ones.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrUnknownColorMode indicates a display color other than auto, always
	// or never.
	ErrUnknownColorMode = errors.New("unknown display color")
)

// Config represents the mindcache.toml configuration file.
type Config struct {
	Store   Store   `toml:"store"`
	User    User    `toml:"user"`
	Display Display `toml:"display"`
	Web     Web     `toml:"web"`
	Log     Log     `toml:"log"`
}

// Store selects and configures the item store.
type Store struct {
	// Backend is one of "file", "redis" or "postgres".
	Backend string `toml:"backend"`

	// Path is the data directory of the file backend.
	Path string `toml:"path"`

	// RedisURL is the redis://host:port/db address of the redis backend.
	RedisURL string `toml:"redis-url"`

	// PostgresDSN is the connection string of the postgres backend.
	PostgresDSN string `toml:"postgres-dsn"`
}

// User identifies whose notebook is opened.
type User struct {
	Owner string `toml:"owner"`
}

// Display contains terminal output settings.
type Display struct {
	// Width wraps rendered items. Zero uses the terminal width.
	Width int `toml:"width"`

	// Color is "auto", "always" or "never".
	Color string `toml:"color"`
}

// Web contains settings for mc serve.
type Web struct {
	Addr string `toml:"addr"`
}

// Log contains logging settings.
type Log struct {
	// Level is a logrus level name such as "info" or "debug".
	Level string `toml:"level"`
}

// Load loads configuration from dir and the global config file, then fills
// in defaults. Missing files are not an error.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)
	if err := merged.applyDefaults(); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path, nil
	}
	return paths.GlobalConfigPath()
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Store.Backend = mergeString(projectMeta.IsDefined("store", "backend"), projectCfg.Store.Backend, globalCfg.Store.Backend)
	merged.Store.Path = mergeString(projectMeta.IsDefined("store", "path"), projectCfg.Store.Path, globalCfg.Store.Path)
	merged.Store.RedisURL = mergeString(projectMeta.IsDefined("store", "redis-url"), projectCfg.Store.RedisURL, globalCfg.Store.RedisURL)
	merged.Store.PostgresDSN = mergeString(projectMeta.IsDefined("store", "postgres-dsn"), projectCfg.Store.PostgresDSN, globalCfg.Store.PostgresDSN)
	merged.User.Owner = mergeString(projectMeta.IsDefined("user", "owner"), projectCfg.User.Owner, globalCfg.User.Owner)
	merged.Display.Color = mergeString(projectMeta.IsDefined("display", "color"), projectCfg.Display.Color, globalCfg.Display.Color)
	merged.Web.Addr = mergeString(projectMeta.IsDefined("web", "addr"), projectCfg.Web.Addr, globalCfg.Web.Addr)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)

	merged.Display.Width = globalCfg.Display.Width
	if projectMeta.IsDefined("display", "width") {
		merged.Display.Width = projectCfg.Display.Width
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) applyDefaults() error {
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	if c.Store.Path == "" {
		dir, err := paths.DefaultDataDir()
		if err != nil {
			return err
		}
		c.Store.Path = dir
	} else {
		dir, err := paths.ExpandHome(c.Store.Path)
		if err != nil {
			return err
		}
		c.Store.Path = dir
	}
	if c.User.Owner == "" {
		c.User.Owner = defaultOwner()
	}
	if c.Display.Color == "" {
		c.Display.Color = "auto"
	}
	if c.Web.Addr == "" {
		c.Web.Addr = "127.0.0.1:8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}

func defaultOwner() string {
	if user := strings.TrimSpace(os.Getenv("USER")); user != "" {
		return user
	}
	return "local"
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store backend %q requires redis-url", c.Store.Backend)
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("store backend %q requires postgres-dsn", c.Store.Backend)
		}
	default:
		return validation.FormatInvalidValueError(ErrUnknownBackend, c.Store.Backend, []string{BackendFile, BackendRedis, BackendPostgres})
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return validation.FormatInvalidValueError(ErrUnknownColorMode, c.Display.Color, []string{"auto", "always", "never"})
	}
	if c.Display.Width < 0 {
		return fmt.Errorf("display width must not be negative, got %d", c.Display.Width)
	}
	return nil
}
