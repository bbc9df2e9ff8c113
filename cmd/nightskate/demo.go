package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nightskate/internal/core"
	"github.com/vovakirdan/nightskate/internal/platform/web"
	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

var (
	flagTicks      int
	flagWeb        string
	flagDemoPreset string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Let the autopilot skate headless",
	Long: `Run the autopilot without a terminal UI and print how the run ended.

Without --web the run is simulated as fast as possible. With --web every
frame is streamed to spectators at /ws, paced at --fps. A bare --web
listens on NIGHTSKATE_WEB_ADDR (default :8080).

Examples:
  nightskate demo --seed 42
  nightskate demo --ticks 100000 --preset rush
  nightskate demo --config ./my-skate.yaml --seed 7
  nightskate demo --web=:9000`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks to simulate")
	demoCmd.Flags().StringVar(&flagWeb, "web", "", "Stream frames to spectators on this address")
	demoCmd.Flags().StringVar(&flagDemoPreset, "preset", "", "Tuning preset: chill, normal, rush")
	demoCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom skate config YAML")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	game, err := skate.New(skate.Options{ConfigPath: flagConfig, Preset: flagDemoPreset})
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = resolveSeed(cmd.Flags(), env)
	game.Reset(rt)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publish := func(skate.Frame) {}
	var pace <-chan time.Time
	if flagWeb != "" {
		var runs web.RunSource
		if store, err := storage.Open(flagDBPath); err == nil {
			defer store.Close()
			runs = store
		}
		srv := web.NewServer(web.Config{Address: flagWeb, GameID: skate.GameID}, nil, runs)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe(ctx) }()
		if srv.Addr() == "" {
			return <-errCh
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Streaming frames on ws://%s/ws\n", srv.Addr())
		publish = srv.Hub().Publish

		ticker := time.NewTicker(time.Second / time.Duration(max(1, rt.TickRate)))
		defer ticker.Stop()
		pace = ticker.C
	}

	f := runAutopilot(ctx, game, flagTicks, pace, publish)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed:     %d\n", f.Seed)
	fmt.Fprintf(out, "top:      %.2f\n", game.World().Config().Skater.MaxSpeed)
	fmt.Fprintf(out, "ticks:    %d\n", f.Tick)
	fmt.Fprintf(out, "score:    %d\n", f.Score)
	fmt.Fprintf(out, "distance: %.1f\n", f.Distance)
	if f.GameOver {
		fmt.Fprintf(out, "ended:    %s\n", f.Cause)
	} else {
		fmt.Fprintln(out, "ended:    still rolling")
	}
	return nil
}

// runAutopilot steps game with the autopilot until the run ends, maxTicks
// have passed or ctx is done. A nil pace runs unthrottled.
func runAutopilot(ctx context.Context, game *skate.Game, maxTicks int, pace <-chan time.Time, publish func(skate.Frame)) skate.Frame {
	pilot := skate.NewAutopilot(skate.DefaultLookahead)
	f := game.Frame()
	for i := 0; i < maxTicks && !f.GameOver; i++ {
		if pace != nil {
			select {
			case <-pace:
			case <-ctx.Done():
				return f
			}
		} else if ctx.Err() != nil {
			return f
		}
		game.Step(pilot.Decide(game.World()))
		f = game.Frame()
		publish(f)
	}
	return f
}
