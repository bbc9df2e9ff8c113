package skate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/nightskate/internal/config"
	"github.com/vovakirdan/nightskate/internal/core"
)

// GameID identifies the skate game in score storage and on the CLI.
const GameID = "skate"

// Options selects the tuning a Game runs with.
type Options struct {
	ConfigPath string // Custom YAML path, empty for the default search
	Preset     string // chill, normal or rush; empty keeps the file values
}

// Game adapts World to the platform's game contract: fixed ticks driven by
// an input frame, rendering into a character screen.
type Game struct {
	cfg     config.SkateConfig
	world   *World
	runtime core.RuntimeConfig
	paused  bool
	runID   string
}

// New loads the skate config and creates a game ready for Reset.
func New(opts Options) (*Game, error) {
	cfg, err := config.LoadSkate(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Preset != "" {
		p := config.ParsePreset(opts.Preset)
		if p == "" {
			return nil, fmt.Errorf("skate: unknown preset %q", opts.Preset)
		}
		config.ApplySkatePreset(&cfg, p)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates a game from an already validated config.
func NewWithConfig(cfg config.SkateConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Night Skate"
}

// Reset starts a new run with the runtime's seed and a fresh run ID.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.runID = uuid.NewString()
	if g.world == nil {
		g.world = NewWorld(g.cfg, runtime.Seed)
		return
	}
	g.world.ResetWithSeed(runtime.Seed)
}

// Step advances the run by one tick. Pause toggles on ActionPause.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.world.Tick(g.runtime.TickSeconds(), in)
	return core.StepResult{State: g.State()}
}

// State returns the coarse run status.
func (g *Game) State() core.GameState {
	f := g.world.Frame()
	return core.GameState{
		Score:    f.Score,
		GameOver: f.GameOver,
		Paused:   g.paused,
		Cause:    f.Cause,
	}
}

// Frame returns the full snapshot of the current tick, tagged with the run ID.
func (g *Game) Frame() Frame {
	f := g.world.Frame()
	f.RunID = g.runID
	return f
}

// RunID identifies the current run.
func (g *Game) RunID() string {
	return g.runID
}

// World exposes the simulation, mainly for the autopilot.
func (g *Game) World() *World {
	return g.world
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	renderWorld(dst, g.world)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.world.GameOver() {
		f := g.world.Frame()
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("%s  |  Score: %d  |  R to restart", f.Cause, f.Score))
	}
}
