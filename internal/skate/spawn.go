package skate

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/nightskate/internal/config"
	"github.com/vovakirdan/nightskate/internal/core"
)

// cosmeticSalt separates the scenery random stream from the hazard stream so
// decoration rolls never shift hazard placement.
const cosmeticSalt int64 = 0x5eed_c0de

// Spawner decides what appears on each newly placed segment.
type Spawner struct {
	cfg        *config.SkateConfig
	hazards    *rand.Rand
	cosmetics  *rand.Rand
	lastDecorZ float64
	lastLaneZ  [2]float64 // Indexed by Lane
}

// NewSpawner creates a spawner seeded for deterministic placement.
func NewSpawner(cfg *config.SkateConfig, seed int64) *Spawner {
	s := &Spawner{cfg: cfg}
	s.Reset(seed)
	return s
}

// Reset re-seeds both random streams and clears the spacing trackers.
func (s *Spawner) Reset(seed int64) {
	s.hazards = rand.New(rand.NewSource(seed))
	s.cosmetics = rand.New(rand.NewSource(seed ^ cosmeticSalt))
	s.lastDecorZ = 0
	s.lastLaneZ = [2]float64{}
}

// OnNewSegment places scenery and rolls hazards for the segment whose rear
// edge is z. Hazards are skipped inside the start clear zone.
func (s *Spawner) OnNewSegment(ents *Entities, x, z float64, initial bool) {
	half := s.cfg.Track.SegmentLength / 2

	if math.Abs(z-s.lastDecorZ) >= s.cfg.Track.DecorationSpacing {
		s.spawnDecoration(ents, x, z-half, SideRight)
		s.spawnDecoration(ents, x, z-half, SideLeft)
		s.lastDecorZ = z
	}

	if initial && math.Abs(z) <= s.cfg.Track.ClearZone {
		return
	}

	if s.hazards.Float64() < s.cfg.Hazards.BarrierChance {
		s.spawnBarrier(ents, z)
	}

	// Traffic and cracks share a segment slot. The crack gets its own roll
	// so its chance does not depend on the traffic threshold.
	if s.hazards.Float64() < s.cfg.Traffic.SpawnChance {
		s.spawnCar(ents, x, z)
	} else if s.hazards.Float64() < s.cfg.Hazards.CrackChance {
		s.spawnCrack(ents, x, z)
	}
}

func (s *Spawner) spawnDecoration(ents *Entities, x, z float64, side Side) {
	offset := (s.cfg.Track.RoadWidth/2 + s.cfg.Track.DecorationOffset) * float64(side)
	d := Decoration{
		X:    x + offset,
		Z:    z,
		Side: side,
	}
	if s.cosmetics.Float64() > 0.3 {
		d.Prop = Building
		d.Height = 8 + s.cosmetics.Float64()*15
		d.Width = 5 + s.cosmetics.Float64()*3
		d.Paint = s.cosmetics.Intn(len(core.Palette))
	} else {
		d.Prop = Streetlamp
		d.Height = 6
		d.Width = 1.5
	}
	ents.Decorations = append(ents.Decorations, d)
}

func (s *Spawner) spawnBarrier(ents *Entities, z float64) {
	fenced := s.hazards.Float64() < s.cfg.Hazards.FenceChance
	height := s.cfg.Hazards.PlainHeight
	if fenced {
		height = s.cfg.Hazards.FencedHeight
	}
	ents.Barriers = append(ents.Barriers, Barrier{
		ZStart: z - s.cfg.Track.SegmentLength,
		ZEnd:   z,
		Width:  s.cfg.Hazards.BarrierWidth,
		Height: height,
		Fenced: fenced,
	})
}

// spawnCar places a car in a random lane unless that lane already received
// one too close to z. An aborted spawn is silent.
func (s *Spawner) spawnCar(ents *Entities, x, z float64) bool {
	lane := LaneRight
	if s.hazards.Float64() < 0.5 {
		lane = LaneLeft
	}
	if math.Abs(z-s.lastLaneZ[lane]) < s.cfg.Traffic.MinCarSpacing {
		return false
	}
	s.lastLaneZ[lane] = z

	ents.Obstacles = append(ents.Obstacles, Obstacle{
		X:           x + lane.Sign()*s.cfg.Traffic.LaneOffset,
		Z:           z - s.cfg.Track.SegmentLength/2,
		Speed:       s.cfg.Traffic.Speed * (0.8 + s.hazards.Float64()*0.4),
		Lane:        lane,
		Approaching: lane == LaneLeft,
		Paint:       s.cosmetics.Intn(len(core.Palette)),
	})
	return true
}

func (s *Spawner) spawnCrack(ents *Entities, x, z float64) {
	spread := s.cfg.Hazards.CrackSpread
	ents.Cracks = append(ents.Cracks, Crack{
		X: x + (s.cosmetics.Float64()-0.5)*2*spread,
		Z: z - s.cfg.Track.SegmentLength/2,
	})
}

// LastLaneZ returns the segment Z of the most recent car in a lane.
func (s *Spawner) LastLaneZ(l Lane) float64 {
	return s.lastLaneZ[l]
}
