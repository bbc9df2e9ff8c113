package skate

import (
	"math"
)

// speedGaugeScale converts per-tick speed into the HUD gauge reading.
const speedGaugeScale = 50 / 0.55

// Transform is the skater's placement for the renderer.
type Transform struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	RotationZ float64 `json:"rot_z"`
	RotationY float64 `json:"rot_y"`
}

// Counts summarizes the live entity collections.
type Counts struct {
	Segments    int `json:"segments"`
	Decorations int `json:"decorations"`
	Barriers    int `json:"barriers"`
	Cracks      int `json:"cracks"`
	Obstacles   int `json:"obstacles"`
}

// Frame is the per-tick output of the simulation.
type Frame struct {
	Tick       uint64    `json:"tick"`
	Score      int       `json:"score"`
	Distance   float64   `json:"distance"`
	Speed      float64   `json:"speed"`
	SpeedNorm  float64   `json:"speed_norm"`
	SpeedGauge float64   `json:"speed_gauge"`
	Phase      string    `json:"phase"`
	JumpHeight float64   `json:"jump_height"`
	GameOver   bool      `json:"game_over"`
	Cause      string    `json:"cause,omitempty"`
	Transform  Transform `json:"transform"`
	Pose       Pose      `json:"pose"`
	Counts     Counts    `json:"counts"`
	Recycled   int       `json:"recycled"`
	Pruned     int       `json:"pruned"`
	RunID      string    `json:"run_id,omitempty"`
	Seed       int64     `json:"seed"`
}

// Frame returns a snapshot of the current state.
func (w *World) Frame() Frame {
	st := w.skater.State
	return Frame{
		Tick:       w.tick,
		Score:      int(math.Floor(st.Score)),
		Distance:   -st.Position.Z(),
		Speed:      st.Speed,
		SpeedNorm:  w.skater.NormalizedSpeed(),
		SpeedGauge: st.Speed * speedGaugeScale,
		Phase:      st.Phase.String(),
		JumpHeight: st.JumpHeight,
		GameOver:   st.Phase == GameOver,
		Cause:      w.Cause(),
		Transform: Transform{
			X:         st.Position.X(),
			Y:         st.Position.Y(),
			Z:         st.Position.Z(),
			RotationZ: st.RotationZ,
			RotationY: st.RotationY,
		},
		Pose: w.skater.Pose,
		Counts: Counts{
			Segments:    w.track.Len(),
			Decorations: len(w.ents.Decorations),
			Barriers:    len(w.ents.Barriers),
			Cracks:      len(w.ents.Cracks),
			Obstacles:   len(w.ents.Obstacles),
		},
		Recycled: w.recycled,
		Pruned:   w.pruned,
		Seed:     w.seed,
	}
}
