package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

// CatalogConfig contains credentials and endpoints for the external music catalog.
type CatalogConfig struct {
	BaseURL      string  `toml:"base_url"`
	TokenURL     string  `toml:"token_url"`
	ClientID     string  `toml:"client_id"`
	ClientSecret string  `toml:"client_secret"`
	RateLimit    float64 `toml:"rate_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings for the JSON API.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PipelineConfig contains defaults for the pack creation pipeline.
type PipelineConfig struct {
	DefaultArtist string `toml:"default_artist"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
