package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
)

// Load reads the configuration, applies environment overrides and validates it.
// Search order: customPath -> ~/.rainbow/config.yaml -> ./configs/rainbow.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/rainbow.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.API.URLTemplate == "" {
		return ValidationError{Field: "api.url_template", Message: "must not be empty"}
	}
	if strings.Count(c.API.URLTemplate, "%s") > 1 {
		return ValidationError{Field: "api.url_template", Message: "must contain at most one %s"}
	}
	if c.API.Timeout <= 0 {
		return ValidationError{Field: "api.timeout", Message: "must be positive"}
	}
	if _, err := core.ZoneByName(c.Timezone); err != nil {
		return ValidationError{Field: "timezone", Message: err.Error()}
	}
	if c.Refresh.CheckInterval <= 0 {
		return ValidationError{Field: "refresh.check_interval", Message: "must be positive"}
	}
	if c.Storage.DBPath == "" {
		return ValidationError{Field: "storage.db_path", Message: "must not be empty"}
	}
	return nil
}

// Zone resolves the configured timezone.
func (c Config) Zone() (core.ZoneProvider, error) {
	return core.ZoneByName(c.Timezone)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rainbow", filename)
}
