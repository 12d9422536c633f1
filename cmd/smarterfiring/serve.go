package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smarterfiring/internal/journal"
	"github.com/vovakirdan/smarterfiring/internal/platform/tui"
	"github.com/vovakirdan/smarterfiring/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Smarterfiring SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent game. Runs are recorded
in the server's journal under the source "ssh:<user>".

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.smarterfiring/host_key

Examples:
  smarterfiring serve                           # Listen on the configured address
  smarterfiring serve --ssh :2222               # Listen on port 2222
  smarterfiring serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	sshCfg := tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKeyPath,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Params:      cfg.Params(),
	}
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = flagIdleTimeout
	}

	var recordTo journal.Store
	if cfg.Journal.Enabled {
		store, err := storage.Open(cfg.Journal.Path)
		if err != nil {
			logger.Warn("journal disabled", "err", err)
		} else {
			defer store.Close()
			recordTo = store
		}
	}

	server, err := tui.NewSSHServer(sshCfg, recordTo, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Smarterfiring SSH server on %s\n", sshCfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
