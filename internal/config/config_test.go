package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if fromYAML != DefaultConfig() {
		t.Errorf("embedded default %+v differs from DefaultConfig() %+v", fromYAML, DefaultConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
api:
  url_template: "http://localhost:9999/%s.json"
timezone: "UTC"
refresh:
  check_interval: 30s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.URLTemplate != "http://localhost:9999/%s.json" {
		t.Errorf("URLTemplate = %q", cfg.API.URLTemplate)
	}
	if cfg.Refresh.CheckInterval != 30*time.Second {
		t.Errorf("CheckInterval = %v", cfg.Refresh.CheckInterval)
	}
	// Unset fields keep their defaults.
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want default 15s", cfg.API.Timeout)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("timezone: UTC\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RAINBOW_API_URL", "http://env.test/%s.json")
	t.Setenv("RAINBOW_DB", "/tmp/env.db")
	t.Setenv("RAINBOW_API_TIMEOUT", "3s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.URLTemplate != "http://env.test/%s.json" {
		t.Errorf("URLTemplate = %q, want env override", cfg.API.URLTemplate)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("DBPath = %q, want env override", cfg.Storage.DBPath)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.API.Timeout)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, file value should survive", cfg.Timezone)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "empty url", mutate: func(c *Config) { c.API.URLTemplate = "" }, field: "api.url_template"},
		{name: "two placeholders", mutate: func(c *Config) { c.API.URLTemplate = "%s/%s" }, field: "api.url_template"},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, field: "api.timeout"},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, field: "timezone"},
		{name: "zero interval", mutate: func(c *Config) { c.Refresh.CheckInterval = 0 }, field: "refresh.check_interval"},
		{name: "empty db", mutate: func(c *Config) { c.Storage.DBPath = "" }, field: "storage.db_path"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			var verr ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed absolute path: %q", got)
	}
}
