package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/platform/tui"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/storage"
)

var (
	flagHistoryLimit int
	flagPlain        bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved boards and completions",
	Long: `List the days you have played, how many tiles were sorted and when
each board was finished.

On a terminal the list opens as an interactive table; use --plain for text.

Examples:
  rainbow history
  rainbow history --plain --limit 7
  rainbow history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 30, "Number of days to show")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all saved boards")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening board database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	records, err := store.History(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, _ := term.GetSize(fd)
		if err := tui.RunHistory(records, stats, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Board History")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No boards saved yet.")
		fmt.Println()
		fmt.Println("Play 'rainbow play' to start your history!")
		return
	}

	fmt.Printf("  %-10s  %-6s  %s\n", "Date", "Sorted", "Finished")
	fmt.Printf("  %-10s  %-6s  %s\n", "----", "------", "--------")
	for _, r := range records {
		finished := "-"
		if r.Completed() {
			finished = r.CompletedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-10s  %-6s  %s\n", r.Date, fmt.Sprintf("%d/%d", r.Assigned, connections.BoardSize), finished)
	}

	fmt.Println()
	fmt.Printf("Played: %d  Finished: %d\n", stats.Saved, stats.Completed)
}
