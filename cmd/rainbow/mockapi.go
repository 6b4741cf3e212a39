package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/mockapi"
)

var (
	flagMockAddr   string
	flagFixtures   string
	flagFailStatus int
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve puzzles from local fixture files",
	Long: `Start a local HTTP server with the same URL shape as the puzzle API.

Requests for /svc/connections/v2/<date>.json are answered from <date>.json in
the fixtures directory, falling back to default.json. Without --fixtures a
built-in puzzle is served for every date.

Examples:
  rainbow mock-api
  rainbow mock-api --addr :9000 --fixtures ./puzzles
  rainbow mock-api --fail 503    # exercise the error screen

Point the client at it with:
  RAINBOW_API_URL=http://localhost:8080/svc/connections/v2/%s.json rainbow`,
	Args: cobra.NoArgs,
	Run:  runMockAPI,
}

func init() {
	mockAPICmd.Flags().StringVar(&flagMockAddr, "addr", ":8080", "HTTP listen address")
	mockAPICmd.Flags().StringVar(&flagFixtures, "fixtures", "", "Directory of <date>.json fixtures")
	mockAPICmd.Flags().IntVar(&flagFailStatus, "fail", 0, "Answer every puzzle request with this HTTP status")
}

func runMockAPI(cmd *cobra.Command, _ []string) {
	level := "info"
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger := logging.New(os.Stderr, level, "rainbow-api")

	var fixtures fs.FS
	if flagFixtures != "" {
		if info, err := os.Stat(flagFixtures); err != nil || !info.IsDir() {
			fmt.Fprintf(os.Stderr, "Error: fixtures directory %q not found\n", flagFixtures)
			os.Exit(1)
		}
		fixtures = os.DirFS(flagFixtures)
	}

	server := mockapi.New(mockapi.Options{
		Addr:       flagMockAddr,
		Fixtures:   fixtures,
		FailStatus: flagFailStatus,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
