package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nightskate/internal/core"
	"github.com/vovakirdan/nightskate/internal/platform/tui"
	"github.com/vovakirdan/nightskate/internal/platform/web"
	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

var (
	flagConfig    string
	flagPreset    string
	flagBroadcast string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Skate in this terminal",
	Long: `Start a run in the current terminal.

Controls:
  Up/W       - Push (accelerate)
  Down/S     - Brake
  Left/A     - Carve left
  Right/D    - Carve right
  Space      - Jump
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Presets:
  chill  - Lower top speed, sparse traffic
  normal - Values from the config file
  rush   - Higher top speed, dense traffic

Spectators:
  --broadcast streams every frame over a websocket at /ws. A bare
  --broadcast listens on NIGHTSKATE_WEB_ADDR (default :8080).

Examples:
  nightskate play
  nightskate play --preset rush
  nightskate play --config ./my-skate.yaml
  nightskate play --broadcast=:9000`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom skate config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Tuning preset: chill, normal, rush")
	playCmd.Flags().StringVar(&flagBroadcast, "broadcast", "", "Stream frames to spectators on this address")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	game, err := skate.New(skate.Options{ConfigPath: flagConfig, Preset: flagPreset})
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(cmd.Flags(), env),
	}

	// Open run storage; the game still works without it.
	var saver tui.RunSaver
	var runs web.RunSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
	} else {
		defer store.Close()
		saver = store
		runs = store
	}

	opts := []tui.Option{tui.WithHold(holdDuration())}

	if flagBroadcast != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		srv := web.NewServer(web.Config{Address: flagBroadcast, GameID: skate.GameID}, nil, runs)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe(ctx) }()
		if srv.Addr() == "" {
			return <-errCh
		}
		opts = append(opts, tui.WithPublisher(srv.Hub().Publish))
		defer func() {
			cancel()
			if err := <-errCh; err != nil {
				fmt.Fprintf(os.Stderr, "Spectator server: %v\n", err)
			}
		}()
	}

	if err := tui.Run(game, saver, cfg, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
