// Package config provides application configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"window-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Data locates the tariff and catalog documents
	Data DataConfig `json:"data"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DataConfig locates the read-only inputs loaded once at startup
type DataConfig struct {
	// TariffPath is the HCL tariff file; empty means built-in defaults
	TariffPath string `json:"tariff_path"`

	// CatalogPath is the YAML catalog document
	CatalogPath string `json:"catalog_path"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// BatchConcurrency bounds parallel quotes in a batch request
	BatchConcurrency int `json:"batch_concurrency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowNote prints the quote note under the breakdown
	ShowNote bool `json:"show_note"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".window-quote")

	return &Config{
		Version: "1.0",
		Data: DataConfig{
			TariffPath:  "",
			CatalogPath: filepath.Join(dataDir, "catalog.yaml"),
		},
		Server: ServerConfig{
			Addr:             ":8080",
			BatchConcurrency: 8,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowNote:      true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
