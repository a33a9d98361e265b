package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "packsmith.db" {
			t.Errorf("expected database path packsmith.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Catalog.BaseURL != "http://localhost:8000" {
			t.Errorf("expected catalog base URL http://localhost:8000, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.RateLimit != 5.0 {
			t.Errorf("expected catalog rate limit 5.0, got %f", config.Catalog.RateLimit)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9090

[catalog]
base_url = "https://catalog.example.com"
token_url = "https://catalog.example.com/oauth/token"
client_id = "test_client_id"
client_secret = "test_secret"
rate_limit = 2.5

[pipeline]
default_artist = "Various Artists"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 9090 {
			t.Errorf("expected server port 9090, got %d", config.Server.Port)
		}

		if config.Catalog.ClientID != "test_client_id" {
			t.Errorf("expected catalog client_id test_client_id, got %s", config.Catalog.ClientID)
		}

		if config.Pipeline.DefaultArtist != "Various Artists" {
			t.Errorf("expected default artist Various Artists, got %s", config.Pipeline.DefaultArtist)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
