package skate

import (
	"github.com/vovakirdan/nightskate/internal/config"
	"github.com/vovakirdan/nightskate/internal/core"
)

// Causes reported when a run ends.
const (
	CauseTraffic = "traffic collision"
	CauseBarrier = "barrier collision"
)

// Collision describes the hit that ended a run.
type Collision struct {
	Kind  EntityKind
	Cause string
	Index int // Position of the entity in its collection
}

// CheckCollision tests the skater against traffic, then barriers, and
// returns the first hit. Cracks are scenery and never collide.
func CheckCollision(st SkaterState, ents *Entities, cfg config.SkateConfig) (Collision, bool) {
	x, z := st.Position.X(), st.Position.Z()
	c := cfg.Collision

	for i, o := range ents.Obstacles {
		if core.Within(z, o.Z, c.CarReach) &&
			core.Within(x, o.X, c.CarHalfWidth) &&
			st.JumpHeight < c.CarClearance {
			return Collision{Kind: KindObstacle, Cause: CauseTraffic, Index: i}, true
		}
	}

	half := cfg.Track.SegmentLength / 2
	for i, b := range ents.Barriers {
		if core.Within(x, 0, c.BarrierHalfWidth) &&
			core.Within(z, b.Center(), half) &&
			st.JumpHeight < b.Height {
			return Collision{Kind: KindBarrier, Cause: CauseBarrier, Index: i}, true
		}
	}

	return Collision{}, false
}
