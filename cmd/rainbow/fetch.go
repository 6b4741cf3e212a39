package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/connections"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/fetch"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
)

var flagJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch today's puzzle and print its tiles",
	Long: `Fetch today's puzzle once and print the sixteen tiles in board order.
Exits non-zero if the puzzle could not be loaded.

Examples:
  rainbow fetch
  rainbow fetch --json
  rainbow fetch --timezone Asia/Tokyo`,
	Args: cobra.NoArgs,
	Run:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&flagJSON, "json", false, "Print tiles as JSON")
}

// tileJSON is the printed form of a tile.
type tileJSON struct {
	Position int    `json:"position"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
}

func runFetch(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	zone := mustZone(cfg)
	logger := logging.New(os.Stderr, cfg.Log.Level, "rainbow-fetch")

	f := newFetcher(cfg, zone, logger)
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
	defer cancel()

	switch r := f.FetchTiles(ctx).(type) {
	case fetch.Failure:
		fmt.Fprintf(os.Stderr, "Error: %v\n", r)
		os.Exit(1)
	case fetch.Success:
		if flagJSON {
			printTilesJSON(r.Tiles)
			return
		}
		fmt.Printf("Puzzle for %s (%s)\n\n", r.Date, f.URL(r.Date))
		fmt.Println(tilesTable(r.Tiles))
	}
}

func printTilesJSON(tiles []connections.Tile) {
	out := make([]tileJSON, len(tiles))
	for i, t := range tiles {
		out[i] = tileJSON{Position: t.InitialPosition}
		switch c := t.Content.(type) {
		case connections.TextContent:
			out[i].Text = c.Text
		case connections.ImageContent:
			out[i].ImageURL = c.URL
			out[i].AltText = c.AltText
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// tilesTable lays the tiles out as the 4x4 board.
func tilesTable(tiles []connections.Tile) string {
	rows := make([][]string, connections.RowSize)
	for _, t := range tiles {
		r := t.CurrentPosition / connections.RowSize
		label := t.Label()
		if _, ok := t.Content.(connections.ImageContent); ok {
			label = "[img] " + label
		}
		rows[r] = append(rows[r], strconv.Itoa(t.InitialPosition)+" "+label)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		BorderRow(true).
		Rows(rows...).
		String()
}
