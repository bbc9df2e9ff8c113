package skate

import (
	"github.com/vovakirdan/nightskate/internal/config"
	"github.com/vovakirdan/nightskate/internal/core"
)

// World is the simulation context of one run. It owns the skater, the track
// window and every live entity; nothing is shared across worlds.
type World struct {
	cfg      config.SkateConfig
	seed     int64
	skater   *Skater
	track    *Track
	ents     Entities
	spawner  *Spawner
	tick     uint64
	hit      Collision
	recycled int // Segments recycled on the last tick
	pruned   int // Entities pruned on the last tick
}

// NewWorld creates a run with a freshly populated track.
func NewWorld(cfg config.SkateConfig, seed int64) *World {
	w := &World{
		cfg:  cfg,
		seed: seed,
	}
	w.skater = NewSkater(cfg)
	w.track = NewTrack(cfg.Track)
	w.spawner = NewSpawner(&w.cfg, seed)
	w.Reset()
	return w
}

// Reset reinitializes every piece of state with the world's seed.
func (w *World) Reset() {
	w.ResetWithSeed(w.seed)
}

// ResetWithSeed reinitializes the run with a new seed.
func (w *World) ResetWithSeed(seed int64) {
	w.seed = seed
	w.tick = 0
	w.hit = Collision{}
	w.recycled, w.pruned = 0, 0
	w.skater.Reset()
	w.ents.Clear()
	w.spawner.Reset(seed)
	w.track.Init(w.onNewSegment)
}

func (w *World) onNewSegment(x, z float64, initial bool) {
	w.spawner.OnNewSegment(&w.ents, x, z, initial)
}

// Tick advances the run by one frame: locomotion, traffic, track window,
// pruning, then collision. Once the run is over it only returns the final
// frame.
func (w *World) Tick(dt float64, in core.InputFrame) Frame {
	if w.GameOver() {
		return w.Frame()
	}
	w.tick++

	w.skater.Update(dt, in)
	w.advanceTraffic()

	z := w.skater.State.Position.Z()
	w.recycled = w.track.Advance(z, w.onNewSegment)
	w.pruned = w.ents.Prune(z, w.cfg.Track.PruneDistance)

	if hit, ok := CheckCollision(w.skater.State, &w.ents, w.cfg); ok {
		w.hit = hit
		w.skater.Crash()
	}

	return w.Frame()
}

// advanceTraffic moves every car along its lane.
func (w *World) advanceTraffic() {
	for i := range w.ents.Obstacles {
		o := &w.ents.Obstacles[i]
		if o.Approaching {
			o.Z += o.Speed
		} else {
			o.Z -= o.Speed
		}
	}
}

// GameOver reports whether the run has ended.
func (w *World) GameOver() bool {
	return w.skater.State.Phase == GameOver
}

// Cause returns why the run ended, or "" while it is running.
func (w *World) Cause() string {
	if !w.GameOver() {
		return ""
	}
	return w.hit.Cause
}

// Skater returns the skater's current state.
func (w *World) Skater() SkaterState {
	return w.skater.State
}

// Pose returns the current animation targets.
func (w *World) Pose() Pose {
	return w.skater.Pose
}

// Entities exposes the live collections for read-only use by renderers.
func (w *World) Entities() *Entities {
	return &w.ents
}

// Track exposes the segment window for read-only use by renderers.
func (w *World) Track() *Track {
	return w.track
}

// Config returns the tuning the world runs with.
func (w *World) Config() config.SkateConfig {
	return w.cfg
}

// Seed returns the seed of the current run.
func (w *World) Seed() int64 {
	return w.seed
}

// Ticks returns the number of simulated ticks since the last reset.
func (w *World) Ticks() uint64 {
	return w.tick
}
