package tui

import (
	"github.com/vovakirdan/nightskate/internal/core"
	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

// Game is the contract between the terminal platform and a game.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier, used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new run. Called once at start and on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-sized screen buffer.
	Render(dst *core.Screen)

	// State returns the coarse run status.
	State() core.GameState
}

// Framer is implemented by games that publish a full snapshot per tick.
type Framer interface {
	Frame() skate.Frame
}

// RunSaver persists finished runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(r storage.Run) (string, error)
}

var (
	_ Game     = (*skate.Game)(nil)
	_ Framer   = (*skate.Game)(nil)
	_ RunSaver = (*storage.Store)(nil)
)
