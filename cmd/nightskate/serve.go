package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nightskate/internal/platform/tui"
	"github.com/vovakirdan/nightskate/internal/skate"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServePreset string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and skate.

Each SSH connection gets its own run. Finished runs are stored per-server
(all users share the same leaderboard, see 'nightskate board').

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.nightskate/host_key

Examples:
  nightskate serve                           # Listen on :23234
  nightskate serve --ssh :2222               # Listen on port 2222
  nightskate serve --host-key ./my_host_key  # Use specific host key
  nightskate serve --preset chill            # Easier runs for everyone

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePreset, "preset", "", "Tuning preset for every session: chill, normal, rush")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom skate config YAML")
}

func runServe(cmd *cobra.Command, _ []string) error {
	opts := skate.Options{ConfigPath: flagConfig, Preset: flagServePreset}
	// Fail on a bad config before accepting connections.
	if _, err := skate.New(opts); err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Hold:        holdDuration(),
	}

	server, err := tui.NewSSHServer(cfg, func() (tui.Game, error) {
		return skate.New(opts)
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Night Skate SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
