package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	if cfg.APIBaseURL == "" {
		t.Error("expected a default API base URL")
	}
	if cfg.PersistMode != config.PersistDurable {
		t.Errorf("expected durable persistence default, got %q", cfg.PersistMode)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("unexpected default timeout: %v", cfg.HTTPTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIELDOS_API_URL", "https://api.example.com")
	t.Setenv("FIELDOS_PERSIST", config.PersistSession)
	t.Setenv("POLL_INTERVAL", "3s")

	cfg := config.Load()

	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("env override ignored: %q", cfg.APIBaseURL)
	}
	if cfg.PersistMode != config.PersistSession {
		t.Errorf("persist mode override ignored: %q", cfg.PersistMode)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Errorf("poll interval override ignored: %v", cfg.PollInterval)
	}
}

func TestLoadFile_OverlaysOnlyUnsetFields(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_base_url: https://file.example.com\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LOG_LEVEL", "warn")
	cfg := config.Load()
	cfg.StateDir = dir

	if err := config.LoadFile(cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.APIBaseURL != "https://file.example.com" {
		t.Errorf("file value ignored: %q", cfg.APIBaseURL)
	}
	// Env var set: the file must not win.
	if cfg.LogLevel != "warn" {
		t.Errorf("env must take precedence over file, got %q", cfg.LogLevel)
	}
}

func TestLoadFile_MissingFileIsFine(t *testing.T) {
	cfg := config.Load()
	cfg.StateDir = t.TempDir()

	if err := config.LoadFile(cfg); err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nFIELDOS_TEST_KEY=from-dotenv\nFIELDOS_TEST_SET=ignored\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FIELDOS_TEST_SET", "already-set")
	defer os.Unsetenv("FIELDOS_TEST_KEY")

	if err := config.LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("FIELDOS_TEST_KEY"); got != "from-dotenv" {
		t.Errorf("expected dotenv value, got %q", got)
	}
	if got := os.Getenv("FIELDOS_TEST_SET"); got != "already-set" {
		t.Errorf("dotenv must not override env, got %q", got)
	}
}
