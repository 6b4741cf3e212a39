package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/logging"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Reverse Rainbow SSH server",
	Long: `Start an SSH server that lets users connect and play today's puzzle.

Each SSH connection gets its own board. Boards are not shared between
sessions and are not saved.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from config, or auto-generates ~/.rainbow/host_key

Examples:
  rainbow serve                           # Listen on the configured address
  rainbow serve --ssh :2222               # Listen on port 2222
  rainbow serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	zone := mustZone(cfg)
	logger := logging.New(os.Stderr, cfg.Log.Level, "rainbow-ssh")

	sshCfg := tui.SSHServerConfig{
		Address:       cfg.SSH.Address,
		HostKeyPath:   cfg.SSH.HostKey,
		IdleTimeout:   cfg.SSH.IdleTimeout,
		Fetcher:       newFetcher(cfg, zone, logger),
		Clock:         core.SystemClock{},
		Zone:          zone,
		Seed:          flagSeed,
		CheckInterval: cfg.Refresh.CheckInterval,
		Logger:        logger,
	}
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}

	server, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Reverse Rainbow SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
