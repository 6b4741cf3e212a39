// Package config provides YAML-based configuration loading for the
// Reverse Rainbow client, with environment variable overrides.
package config

import (
	"fmt"
	"time"
)

// Config is the complete client configuration.
type Config struct {
	API      APIConfig     `yaml:"api"`
	Timezone string        `yaml:"timezone" env:"RAINBOW_TIMEZONE"` // empty = system zone
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`
	Refresh  RefreshConfig `yaml:"refresh"`
	SSH      SSHConfig     `yaml:"ssh"`
}

// APIConfig defines where puzzles are fetched from.
type APIConfig struct {
	URLTemplate string        `yaml:"url_template" env:"RAINBOW_API_URL"` // %s = YYYY-MM-DD
	Timeout     time.Duration `yaml:"timeout" env:"RAINBOW_API_TIMEOUT"`
}

// StorageConfig defines where boards are persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"RAINBOW_DB"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"RAINBOW_LOG_LEVEL"`
	File  string `yaml:"file" env:"RAINBOW_LOG_FILE"` // used by the interactive client
}

// RefreshConfig defines the staleness check cadence.
type RefreshConfig struct {
	CheckInterval time.Duration `yaml:"check_interval" env:"RAINBOW_CHECK_INTERVAL"`
}

// SSHConfig defines the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"RAINBOW_SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"RAINBOW_SSH_HOST_KEY"` // auto-generated if empty
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"RAINBOW_SSH_IDLE_TIMEOUT"`
}

// ValidationError describes an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}
