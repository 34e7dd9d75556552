package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/srijanmishra08/playlist-recommender/internal/testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "recommender.db" {
			t.Errorf("expected database path recommender.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Discovery.Market != "US" {
			t.Errorf("expected market US, got %s", config.Discovery.Market)
		}

		if config.Credentials.Spotify.RedirectURI != "http://localhost:3000/callback" {
			t.Errorf("unexpected redirect uri %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		tu.AssertFileExists(t, configPath)

		if !strings.Contains(tu.MustReadFile(t, configPath), "[database]") {
			t.Error("created config should contain the example sections")
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
port = 8080

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"

[discovery]
market = "GB"
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

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Discovery.Market != "GB" {
			t.Errorf("expected market GB, got %s", config.Discovery.Market)
		}
	})

	t.Run("LoadEnv overrides file values", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_client_id")
		t.Setenv("DISCOVERY_MARKET", "DE")

		config := DefaultConfig()
		if err := LoadEnv(config, ""); err != nil {
			t.Fatalf("LoadEnv failed: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_client_id" {
			t.Errorf("client_id = %s, want env override", config.Credentials.Spotify.ClientID)
		}
		if config.Discovery.Market != "DE" {
			t.Errorf("market = %s, want DE", config.Discovery.Market)
		}
	})

	t.Run("LoadEnv reads dotenv file", func(t *testing.T) {
		tmpDir := t.TempDir()
		dotenvPath := filepath.Join(tmpDir, ".env")
		if err := os.WriteFile(dotenvPath, []byte("SPOTIFY_CLIENT_SECRET=dotenv_secret\n"), 0600); err != nil {
			t.Fatalf("failed to write dotenv: %v", err)
		}

		config := DefaultConfig()
		if err := LoadEnv(config, dotenvPath); err != nil {
			t.Fatalf("LoadEnv failed: %v", err)
		}

		if config.Credentials.Spotify.ClientSecret != "dotenv_secret" {
			t.Errorf("client_secret = %s, want dotenv value", config.Credentials.Spotify.ClientSecret)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("err = %v, want ErrMissingCredentials", err)
		}

		config.Credentials.Spotify.ClientID = "id"
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("err = %v, want ErrMissingCredentials for missing secret", err)
		}

		config.Credentials.Spotify.ClientSecret = "secret"
		if err := config.Validate(); err != nil {
			t.Errorf("Validate failed with full credentials: %v", err)
		}
	})
}
