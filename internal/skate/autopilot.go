package skate

import (
	"github.com/vovakirdan/nightskate/internal/core"
)

// Autopilot tuning.
const (
	cruiseOffset  = 2.0  // Lateral target between the divider and a lane
	steerDeadband = 0.15 // Tolerance around the target before steering
	stopFactor    = 5.5  // Coasting distance as a multiple of lateral velocity
	jumpLeadMin   = 6.0  // Ticks before a hazard to take off
	jumpLeadMax   = 9.0
	hazardMargin  = 0.6
)

// Autopilot is a deterministic heuristic driver for demo runs and long-run
// tests. It reads the world and returns input; it never changes the world.
type Autopilot struct {
	Lookahead float64 // World units scanned ahead of the skater
	target    float64
}

// DefaultLookahead is the scan distance used by the demo command.
const DefaultLookahead = 40.0

// NewAutopilot returns a driver that scans lookahead units ahead.
func NewAutopilot(lookahead float64) *Autopilot {
	return &Autopilot{Lookahead: lookahead, target: cruiseOffset}
}

// Decide picks the input for the next tick.
func (a *Autopilot) Decide(w *World) core.InputFrame {
	in := core.FrameOf(core.ActionForward)
	if w.GameOver() {
		return in
	}
	st := w.Skater()

	a.target = a.pickTarget(w, st)

	predicted := st.Position.X() + st.LateralVelocity*stopFactor
	switch {
	case predicted < a.target-steerDeadband:
		in.Set(core.ActionRight)
	case predicted > a.target+steerDeadband:
		in.Set(core.ActionLeft)
	}

	if st.Phase == Grounded && a.mustJump(w, st) {
		in.Set(core.ActionJump)
	}
	return in
}

// Target returns the lateral position the autopilot is steering toward.
func (a *Autopilot) Target() float64 {
	return a.target
}

// pickTarget chooses the clearest of the center line and the two cruise
// offsets. Ties keep the current target, and the center loses ties to the
// offsets since barriers sit on it.
func (a *Autopilot) pickTarget(w *World, st SkaterState) float64 {
	candidates := []float64{a.target, -a.target, 0}
	if a.target == 0 {
		candidates = []float64{cruiseOffset, -cruiseOffset, 0}
	}
	best, bestGap := candidates[0], -1.0
	for _, x := range candidates {
		if gap, _ := a.clearance(w, st, x); gap > bestGap {
			best, bestGap = x, gap
		}
	}
	return best
}

// clearance returns the distance ahead to the first hazard overlapping a
// corridor at lateral position x. ok is false when nothing blocks the
// corridor within the lookahead.
func (a *Autopilot) clearance(w *World, st SkaterState, x float64) (gap float64, ok bool) {
	z := st.Position.Z()
	cfg := w.Config().Collision
	ents := w.Entities()
	gap = a.Lookahead

	if core.Within(x, 0, cfg.BarrierHalfWidth+hazardMargin) {
		for _, b := range ents.Barriers {
			if d := z - b.ZEnd; d >= 0 && d < gap {
				gap, ok = d, true
			}
		}
	}
	for _, o := range ents.Obstacles {
		if !core.Within(x, o.X, cfg.CarHalfWidth+hazardMargin) {
			continue
		}
		if d := z - (o.Z + cfg.CarReach); d >= 0 && d < gap {
			gap, ok = d, true
		}
	}
	return gap, ok
}

// mustJump reports whether a hazard in the skater's own path is inside the
// take-off window.
func (a *Autopilot) mustJump(w *World, st SkaterState) bool {
	gap, ok := a.clearance(w, st, st.Position.X())
	if !ok || st.Speed <= 0 {
		return false
	}
	lead := gap / st.Speed
	return lead >= jumpLeadMin && lead <= jumpLeadMax
}
