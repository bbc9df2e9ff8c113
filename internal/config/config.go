// Package config provides YAML-based configuration for the skating
// simulation and environment-based process settings.
package config

// SkateConfig contains every tunable of the simulation.
type SkateConfig struct {
	Track     TrackConfig     `yaml:"track"`
	Skater    SkaterConfig    `yaml:"skater"`
	Traffic   TrafficConfig   `yaml:"traffic"`
	Hazards   HazardConfig    `yaml:"hazards"`
	Collision CollisionConfig `yaml:"collision"`
}

// TrackConfig defines the road geometry and the sliding window.
type TrackConfig struct {
	RoadWidth         float64 `yaml:"road_width"`
	SegmentLength     float64 `yaml:"segment_length"`
	VisibleSegments   int     `yaml:"visible_segments"`
	RecycleTrigger    float64 `yaml:"recycle_trigger"`    // How far behind the skater a segment's rear edge may fall
	PruneDistance     float64 `yaml:"prune_distance"`     // How far behind the skater entities are kept
	ClearZone         float64 `yaml:"clear_zone"`         // |z| of the hazard-free start area
	DecorationSpacing float64 `yaml:"decoration_spacing"` // Minimum Z between decoration pairs
	DecorationOffset  float64 `yaml:"decoration_offset"`  // Distance of decorations beyond the road edge
}

// SkaterConfig defines locomotion parameters. All rates are per tick.
type SkaterConfig struct {
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Accel      float64 `yaml:"accel"`
	Friction   float64 `yaml:"friction"`
	BrakeDecel float64 `yaml:"brake_decel"`
	Recover    float64 `yaml:"recover"` // Increment back toward min_speed when coasting slowly
	TurnSpeed  float64 `yaml:"turn_speed"`
	JumpPower  float64 `yaml:"jump_power"`
	Gravity    float64 `yaml:"gravity"`
	RideHeight float64 `yaml:"ride_height"`
}

// TrafficConfig defines car spawning and movement.
type TrafficConfig struct {
	Speed         float64 `yaml:"speed"`
	SpawnChance   float64 `yaml:"spawn_chance"`
	MinCarSpacing float64 `yaml:"min_car_spacing"`
	LaneOffset    float64 `yaml:"lane_offset"`
}

// HazardConfig defines barrier and crack spawning.
type HazardConfig struct {
	BarrierChance float64 `yaml:"barrier_chance"`
	FenceChance   float64 `yaml:"fence_chance"`
	CrackChance   float64 `yaml:"crack_chance"`
	BarrierWidth  float64 `yaml:"barrier_width"`
	PlainHeight   float64 `yaml:"plain_height"`
	FencedHeight  float64 `yaml:"fenced_height"`
	CrackSpread   float64 `yaml:"crack_spread"` // Lateral jitter of cracks around the road center
}

// CollisionConfig defines the hit-box thresholds. All bounds are exclusive.
type CollisionConfig struct {
	CarReach         float64 `yaml:"car_reach"`          // Longitudinal distance
	CarHalfWidth     float64 `yaml:"car_half_width"`     // Lateral distance
	CarClearance     float64 `yaml:"car_clearance"`      // Jump height that clears a car
	BarrierHalfWidth float64 `yaml:"barrier_half_width"` // Lateral distance from road center
}

// Preset names a fixed tuning applied at start. There is no progression.
type Preset string

const (
	PresetChill  Preset = "chill"
	PresetNormal Preset = "normal"
	PresetRush   Preset = "rush"
)

// ParsePreset maps a CLI value to a preset. Unknown values mean "no preset".
func ParsePreset(s string) Preset {
	switch Preset(s) {
	case PresetChill, PresetNormal, PresetRush:
		return Preset(s)
	default:
		return ""
	}
}

// ApplySkatePreset modifies the config for a preset.
func ApplySkatePreset(cfg *SkateConfig, preset Preset) {
	switch preset {
	case PresetChill:
		cfg.Skater.MaxSpeed = 0.5
		cfg.Traffic.SpawnChance = 0.1
		cfg.Hazards.BarrierChance = 0.3
	case PresetRush:
		cfg.Skater.MaxSpeed = 0.7
		cfg.Traffic.Speed = 0.3
		cfg.Traffic.SpawnChance = 0.2
		cfg.Hazards.BarrierChance = 0.45
	}
}

// HalfRoad is the largest |x| the skater can reach.
func (c SkateConfig) HalfRoad() float64 {
	return c.Track.RoadWidth/2 - 0.5
}

// WindowLength is the Z extent covered by the live segments.
func (c SkateConfig) WindowLength() float64 {
	return float64(c.Track.VisibleSegments) * c.Track.SegmentLength
}
