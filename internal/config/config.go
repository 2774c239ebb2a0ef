/*
Package config handles loading and saving apiscout configuration.

Configuration is stored in ~/.apiscout.json:

	{
	  "settings": {
	    "dataDir": "/home/user/.apiscout",
	    "semanticThreshold": 0.2,
	    "searchLimit": 25,
	    "embeddingDim": 256,
	    "httpPort": 8080
	  }
	}

The semantic threshold and search limit are configurable defaults rather
than hard constants; the shipped values match the catalog's historical
behavior.
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Settings *Settings `json:"settings"`
}

// Settings contains the tunable options.
type Settings struct {
	// DataDir is where the catalog database, full-text index and
	// keystore live. Defaults to ~/.apiscout.
	DataDir string `json:"dataDir,omitempty"`

	// SemanticThreshold is the minimum cosine similarity for a record
	// to count as a semantic match.
	SemanticThreshold float64 `json:"semanticThreshold,omitempty"`

	// SearchLimit caps each search result bucket.
	SearchLimit int `json:"searchLimit,omitempty"`

	// EmbeddingDim is the hashing-embedding dimension.
	EmbeddingDim int `json:"embeddingDim,omitempty"`

	// HTTPPort is the port used by the serve command.
	HTTPPort int `json:"httpPort,omitempty"`
}

// NewConfig creates a configuration with default settings.
func NewConfig() *Config {
	return &Config{
		Settings: &Settings{
			SemanticThreshold: 0.2,
			SearchLimit:       25,
			EmbeddingDim:      256,
			HTTPPort:          8080,
		},
	}
}

// DefaultConfigPath returns the path to ~/.apiscout.json.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".apiscout.json"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "Run 'apiscout setup' to create configuration",
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: fmt.Sprintf("JSON parse error: %v", err),
			Hint:    "Fix or delete the file and run 'apiscout setup' again",
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrCreate loads the configuration, creating the default one on
// first run.
func LoadOrCreate() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		return cfg, nil
	}
	if _, missing := err.(*ConfigNotFoundError); !missing {
		return nil, err
	}

	cfg = NewConfig()
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration atomically: temp file in the target
// directory renamed into place.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Rename(tmp, path)
}

// applyDefaults fills zero-valued settings with the shipped defaults.
func applyDefaults(cfg *Config) {
	def := NewConfig().Settings
	if cfg.Settings == nil {
		cfg.Settings = def
		return
	}
	if cfg.Settings.SemanticThreshold == 0 {
		cfg.Settings.SemanticThreshold = def.SemanticThreshold
	}
	if cfg.Settings.SearchLimit <= 0 {
		cfg.Settings.SearchLimit = def.SearchLimit
	}
	if cfg.Settings.EmbeddingDim <= 0 {
		cfg.Settings.EmbeddingDim = def.EmbeddingDim
	}
	if cfg.Settings.HTTPPort <= 0 {
		cfg.Settings.HTTPPort = def.HTTPPort
	}
}

// DataDir returns the configured data directory, defaulting to
// ~/.apiscout.
func (c *Config) DataDir() (string, error) {
	if c.Settings != nil && c.Settings.DataDir != "" {
		return c.Settings.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".apiscout"), nil
}

// DBPath returns the catalog database location.
func (c *Config) DBPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.db"), nil
}

// IndexPath returns the full-text index location.
func (c *Config) IndexPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "index.bleve"), nil
}

// KeysPath returns the keystore location.
func (c *Config) KeysPath() (string, error) {
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keys.db"), nil
}
