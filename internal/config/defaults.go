package config

import (
	_ "embed"
	"time"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
)

//go:embed defaults/rainbow.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			URLTemplate: fetch.DefaultURLTemplate,
			Timeout:     15 * time.Second,
		},
		Timezone: "",
		Storage: StorageConfig{
			DBPath: "~/.rainbow/boards.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.rainbow/rainbow.log",
		},
		Refresh: RefreshConfig{
			CheckInterval: time.Minute,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
