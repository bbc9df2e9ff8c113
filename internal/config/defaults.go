package config

import (
	_ "embed"
)

//go:embed defaults/skate.yaml
var defaultSkateYAML []byte

// DefaultSkateConfig returns the built-in tuning. It mirrors
// defaults/skate.yaml and is used when the embedded YAML cannot be parsed.
func DefaultSkateConfig() SkateConfig {
	return SkateConfig{
		Track: TrackConfig{
			RoadWidth:         12,
			SegmentLength:     5,
			VisibleSegments:   45,
			RecycleTrigger:    10,
			PruneDistance:     25,
			ClearZone:         20,
			DecorationSpacing: 12,
			DecorationOffset:  4,
		},
		Skater: SkaterConfig{
			MinSpeed:   0.275,
			MaxSpeed:   0.60,
			Accel:      0.0025,
			Friction:   0.994,
			BrakeDecel: 0.006,
			Recover:    0.005,
			TurnSpeed:  0.016,
			JumpPower:  0.22,
			Gravity:    0.015,
			RideHeight: 0.42,
		},
		Traffic: TrafficConfig{
			Speed:         0.24,
			SpawnChance:   0.15,
			MinCarSpacing: 12,
			LaneOffset:    4.5,
		},
		Hazards: HazardConfig{
			BarrierChance: 0.4,
			FenceChance:   0.6,
			CrackChance:   0.05,
			BarrierWidth:  0.6,
			PlainHeight:   0.5,
			FencedHeight:  1.2,
			CrackSpread:   4,
		},
		Collision: CollisionConfig{
			CarReach:         2.0,
			CarHalfWidth:     0.9,
			CarClearance:     1.0,
			BarrierHalfWidth: 0.35,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `config dump`.
func DefaultYAML() []byte {
	return defaultSkateYAML
}
