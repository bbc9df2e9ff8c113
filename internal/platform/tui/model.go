package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nightskate/internal/core"
	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

// statusStyle renders the help/status line under the playfield.
var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Option customizes a Model.
type Option func(*Model)

// WithHold sets how long a key press keeps its action held.
func WithHold(d time.Duration) Option {
	return func(m *Model) { m.hold = NewHoldTracker(d) }
}

// WithPublisher receives every frame of games that implement Framer.
func WithPublisher(publish func(skate.Frame)) Option {
	return func(m *Model) { m.publish = publish }
}

// WithRenderer draws the screen with a session-specific renderer.
func WithRenderer(r *ScreenRenderer) Option {
	return func(m *Model) { m.renderer = r }
}

// WithClock replaces time.Now for hold tracking.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      Game
	screen    *core.Screen
	store     RunSaver
	config    core.RuntimeConfig
	hold      *HoldTracker
	pulses    core.InputFrame // One-shot actions for the next tick
	keys      KeyMap
	help      help.Model
	gameState core.GameState
	publish   func(skate.Frame)
	renderer  *ScreenRenderer
	now       func() time.Time
	quitting  bool
	runSaved  bool // Whether the current finished run has been saved
	saveErr   error
}

// NewModel creates a new Bubble Tea model for the given game. store may be
// nil to play without persistence. cfg.Seed is used as given, zero included.
func NewModel(game Game, store RunSaver, cfg core.RuntimeConfig, opts ...Option) Model {
	m := Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		store:    store,
		config:   cfg,
		hold:     NewHoldTracker(DefaultHold),
		pulses:   core.NewInputFrame(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		renderer: defaultScreenRenderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW
	return m
}

// playfieldHeight leaves one row for the status line.
func playfieldHeight(h int) int {
	return max(0, h-1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionNone:
	case isHeld(action):
		m.hold.Press(action, m.now())
	case action == core.ActionRestart && !m.gameState.GameOver:
		// Restart only applies to a finished run
	default:
		m.pulses.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The skate view scales to
// any size, so the run keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.pulses.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	in := m.hold.Frame(m.now())
	for a := range m.pulses.Actions {
		in.Set(a)
	}

	result := m.game.Step(in)
	m.gameState = result.State

	if fr, ok := m.game.(Framer); ok {
		frame := fr.Frame()
		if m.publish != nil {
			m.publish(frame)
		}
		if m.gameState.GameOver && !m.runSaved {
			m.saveRun(frame)
		}
	}

	m.pulses.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.saveErr = nil
	m.hold.Reset()
	m.pulses.Clear()
}

// saveRun records a finished run once. Zero-score runs are not kept.
func (m *Model) saveRun(f skate.Frame) {
	m.runSaved = true
	if m.store == nil || f.Score <= 0 {
		return
	}
	_, m.saveErr = m.store.SaveRun(storage.Run{
		ID:       f.RunID,
		GameID:   m.game.ID(),
		Score:    f.Score,
		Distance: f.Distance,
		Cause:    f.Cause,
		Seed:     f.Seed,
		Ticks:    int64(f.Tick),
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".nightskate", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	status := m.help.View(m.keys)
	if m.saveErr != nil {
		status = "run not saved: " + m.saveErr.Error()
	}
	return m.renderer.Render(m.screen) + "\n" + statusStyle.Render(status)
}

// GameState returns the status after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, store RunSaver, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
