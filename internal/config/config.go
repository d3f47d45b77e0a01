// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/citelint/config.yml.
// Environment variables override file values (CITELINT_AI_API_KEY,
// CITELINT_AI_BASE_URL, CITELINT_AI_MODEL).
type Config struct {
	AuthorFormat string `yaml:"author_format,omitempty"` // full | abbrev
	AIAPIKey     string `yaml:"ai_api_key,omitempty"`
	AIBaseURL    string `yaml:"ai_base_url,omitempty"`
	AIModel      string `yaml:"ai_model,omitempty"`
	ReportsDB    string `yaml:"reports_db,omitempty"` // path to the report store
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citelint"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// ReportsDBFile is the default report store file name.
	ReportsDBFile = "reports.db"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/citelint/config.yml.
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

// Load reads the global configuration file and applies environment
// overrides. Returns an empty config (not an error) if the file doesn't
// exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	var cfg Config
	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if v := os.Getenv("CITELINT_AI_API_KEY"); v != "" {
		cfg.AIAPIKey = v
	}
	if v := os.Getenv("CITELINT_AI_BASE_URL"); v != "" {
		cfg.AIBaseURL = v
	}
	if v := os.Getenv("CITELINT_AI_MODEL"); v != "" {
		cfg.AIModel = v
	}

	configCache = &cfg
	return &cfg, nil
}

// Save writes the configuration file, creating its directory if needed,
// and invalidates the cache.
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

// ReportsDBPath returns the configured report store path, or the default
// under XDG_DATA_HOME (~/.local/share/citelint/reports.db).
func ReportsDBPath() string {
	cfg, _ := Load()
	if cfg.ReportsDB != "" {
		return ExpandPath(cfg.ReportsDB)
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ReportsDBFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, ReportsDBFile)
}

// ExpandPath expands ~ to the user's home directory. Returns the original
// path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
