package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/nightskate/internal/core"
)

func TestHoldTrackerExpiry(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)

	tests := []struct {
		name string
		at   time.Duration
		held bool
	}{
		{"immediately", 0, true},
		{"within hold", 99 * time.Millisecond, true},
		{"at expiry", 100 * time.Millisecond, false},
		{"after expiry", time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Held(core.ActionLeft, t0.Add(tt.at)); got != tt.held {
				t.Errorf("Held() = %v, want %v", got, tt.held)
			}
		})
	}
}

func TestHoldTrackerRepeatExtends(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionForward, t0)
	h.Press(core.ActionForward, t0.Add(80*time.Millisecond))

	if !h.Frame(t0.Add(150 * time.Millisecond)).Has(core.ActionForward) {
		t.Error("auto-repeat should extend the hold")
	}
	if h.Frame(t0.Add(181 * time.Millisecond)).Has(core.ActionForward) {
		t.Error("hold should end 100ms after the last repeat")
	}
	if len(h.until) != 0 {
		t.Errorf("expired actions not forgotten: %v", h.until)
	}
}

func TestHoldTrackerOpposites(t *testing.T) {
	h := NewHoldTracker(time.Second)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionJump, t0)
	h.Press(core.ActionRight, t0)

	f := h.Frame(t0)
	if f.Has(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !f.Has(core.ActionRight) || !f.Has(core.ActionJump) {
		t.Errorf("frame = %v, want right and jump", f.Actions)
	}

	h.Reset()
	if len(h.Frame(t0).Actions) != 0 {
		t.Error("Reset should release everything")
	}
}

func TestHoldTrackerDefault(t *testing.T) {
	if got := NewHoldTracker(0).Hold(); got != DefaultHold {
		t.Errorf("Hold() = %v, want %v", got, DefaultHold)
	}
}
