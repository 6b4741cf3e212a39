package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/config"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/loader"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/platform/tui"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play today's puzzle",
	Long: `Load today's puzzle and open the board.

Controls:
  Arrows/HJKL  - Move cursor
  Space        - Select tile
  Enter        - Select the tile's whole group
  1-4          - Assign/clear/swap yellow, green, blue, purple
  Shift+1-4    - Select every tile of a color
  M            - Pick up a tile, M again to drop it
  Esc          - Cancel a move
  S            - Shuffle unsorted tiles
  X            - Reset the board
  R            - Retry after a failed load
  ?            - Full help
  Q/Ctrl+C     - Quit

Your board is saved as you play and restored when you come back the same day.

Examples:
  rainbow play
  rainbow play --timezone Australia/Melbourne
  rainbow play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	zone := mustZone(cfg)

	// The board owns the terminal, so logs go to a file.
	logger := logging.Discard()
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(config.ExpandHome(cfg.Log.File))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			defer f.Close()
			logger = logging.New(f, cfg.Log.Level, "rainbow")
		}
	}

	// Get terminal size for the first frame
	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	opts := tui.Options{
		Clock:         core.SystemClock{},
		CheckInterval: cfg.Refresh.CheckInterval,
		Logger:        logger,
		Width:         rc.ScreenW,
		Height:        rc.ScreenH,
	}

	// Open board storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open board database: %v\n", err)
		// Continue without storage - the board still works
		store = nil
	}
	var restore *loader.Snapshot
	if store != nil {
		defer store.Close()
		opts.Store = store
		restore = restoreToday(store, zone, logger)
	}

	opts.Loader = loader.New(loader.Config{
		Fetcher: newFetcher(cfg, zone, logger),
		Clock:   core.SystemClock{},
		Zone:    zone,
		Seed:    rc.Seed,
		Logger:  logger,
		Restore: restore,
	})

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// restoreToday returns today's saved board, if any.
func restoreToday(store *storage.Store, zone core.ZoneProvider, logger *log.Logger) *loader.Snapshot {
	today := core.Today(core.SystemClock{}, zone)
	snap, ok, err := store.LoadSnapshot(today)
	if err != nil {
		logger.Warn("could not load saved board", "date", today.String(), "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	logger.Info("restoring saved board", "date", today.String())
	return &snap
}
