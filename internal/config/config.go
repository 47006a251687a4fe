// Package config handles global configuration for the preprint CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/preprint/config.yml.
type Config struct {
	DBPath             string  `yaml:"db_path,omitempty"`
	UserAgent          string  `yaml:"user_agent,omitempty"`
	MinIntervalSeconds float64 `yaml:"min_interval_seconds,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "preprint"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultDBFile is the database file name used when db_path is unset.
	DefaultDBFile = "papers.db"
)

// EnvDBPath overrides the configured database path when set.
const EnvDBPath = "PREPRINT_DB"

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/preprint/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the global configuration file. Returns an empty config (not
// an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBPath != "" {
		cfg.DBPath = ExpandTilde(cfg.DBPath)
	}

	configCache = &cfg
	return &cfg, nil
}

// Save writes the configuration, creating the config directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ResetCache()
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// DBPath returns the effective database path: the PREPRINT_DB environment
// variable, then the configured db_path, then ~/.local/share/preprint/papers.db.
func DBPath() string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return ExpandTilde(p)
	}

	cfg, _ := Load()
	if cfg.DBPath != "" {
		return cfg.DBPath
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultDBFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, DefaultDBFile)
}

// UserAgent returns the configured user agent, or "" when unset.
func UserAgent() string {
	cfg, _ := Load()
	return cfg.UserAgent
}

// MinIntervalSeconds returns the configured request spacing in seconds,
// or 0 when unset (callers apply their own default).
func MinIntervalSeconds() float64 {
	cfg, _ := Load()
	return cfg.MinIntervalSeconds
}

// ExpandTilde expands a leading ~ to the user's home directory. Returns
// the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
