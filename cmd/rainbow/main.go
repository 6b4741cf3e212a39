// rainbow is a terminal client for the daily Connections puzzle.
//
// Usage:
//
//	rainbow play       - Play today's puzzle (default)
//	rainbow fetch      - Fetch today's puzzle and print its tiles
//	rainbow serve      - Start SSH server for remote play
//	rainbow history    - Show saved boards and completions
//	rainbow mock-api   - Serve puzzles from fixture files
//
// Global flags:
//
//	--config <path>    - Config file (default: ~/.rainbow/config.yaml)
//	--db <path>        - Board database path
//	--seed <value>     - Shuffle seed for reproducible boards
//	--timezone <zone>  - IANA timezone that decides "today"
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/config"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagTimezone string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rainbow",
	Short: "Reverse Rainbow - the daily Connections puzzle in your terminal",
	Long: `Reverse Rainbow fetches the day's sixteen words and lets you sort them
into four colored groups on a 4x4 board.

Available commands:
  play      - Play today's puzzle (default)
  fetch     - Print today's tiles without starting the board
  serve     - Start SSH server for remote play
  history   - View saved boards and completions
  mock-api  - Serve puzzles from local fixture files

Examples:
  rainbow
  rainbow fetch --json
  rainbow serve --ssh :2222
  rainbow mock-api --addr :8080 &
  RAINBOW_API_URL=http://localhost:8080/svc/connections/v2/%s.json rainbow`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to board database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Shuffle seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA timezone for today's date (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mockAPICmd)
}

// loadConfig loads the config file and applies global flag overrides.
// Exits on error.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagTimezone != "" {
		cfg.Timezone = flagTimezone
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// mustZone resolves the configured timezone. Exits on error.
func mustZone(cfg config.Config) core.ZoneProvider {
	zone, err := cfg.Zone()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return zone
}

// newFetcher builds the puzzle fetcher described by cfg.
func newFetcher(cfg config.Config, zone core.ZoneProvider, logger *log.Logger) *fetch.Fetcher {
	client := &http.Client{Timeout: cfg.API.Timeout}
	return fetch.New(fetch.Config{
		URLTemplate: cfg.API.URLTemplate,
		Clock:       core.SystemClock{},
		Zone:        zone,
		Network:     fetch.HTTPNetwork(client),
		Logger:      logger,
	})
}
