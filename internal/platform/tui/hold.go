package tui

import (
	"time"

	"github.com/vovakirdan/nightskate/internal/core"
)

// DefaultHold is how long a key press keeps its action held.
const DefaultHold = 180 * time.Millisecond

// opposites lists actions that cancel each other when pressed.
var opposites = map[core.Action]core.Action{
	core.ActionLeft:    core.ActionRight,
	core.ActionRight:   core.ActionLeft,
	core.ActionForward: core.ActionBrake,
	core.ActionBrake:   core.ActionForward,
}

// HoldTracker turns key presses into held actions. Terminals report presses
// and auto-repeats but never releases, so an action stays held until hold
// has passed since its last press.
type HoldTracker struct {
	hold  time.Duration
	until map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive hold uses DefaultHold.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HoldTracker{
		hold:  hold,
		until: make(map[core.Action]time.Time),
	}
}

// Press marks an action held from now and releases its opposite.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	h.until[a] = now.Add(h.hold)
	if o, ok := opposites[a]; ok {
		delete(h.until, o)
	}
}

// Release drops an action immediately.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.until, a)
}

// Held reports whether an action is still held at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Frame returns the actions held at now and forgets expired ones.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, t := range h.until {
		if now.Before(t) {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return f
}

// Reset releases everything.
func (h *HoldTracker) Reset() {
	clear(h.until)
}

// Hold returns the hold duration.
func (h *HoldTracker) Hold() time.Duration {
	return h.hold
}
