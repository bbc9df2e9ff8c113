package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSkate loads the simulation configuration.
// Search order: customPath -> ~/.nightskate/configs/skate.yaml ->
// ./configs/skate.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. A custom path that is missing or invalid is an error; the
// implicit locations are skipped when unusable.
func LoadSkate(customPath string) (SkateConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SkateConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeSkate(data)
		if err != nil {
			return SkateConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("skate.yaml"), filepath.Join("configs", "skate.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeSkate(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := decodeSkate(defaultSkateYAML)
	if err != nil {
		return DefaultSkateConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeSkate parses YAML over the defaults and validates the result.
func decodeSkate(data []byte) (SkateConfig, error) {
	cfg := DefaultSkateConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SkateConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SkateConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nightskate", "configs", filename)
}

// Validate checks that every tunable is usable. All violations are reported.
func (c SkateConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("track.road_width", c.Track.RoadWidth)
	positive("track.segment_length", c.Track.SegmentLength)
	positive("track.visible_segments", float64(c.Track.VisibleSegments))
	positive("track.recycle_trigger", c.Track.RecycleTrigger)
	positive("track.prune_distance", c.Track.PruneDistance)
	positive("track.decoration_spacing", c.Track.DecorationSpacing)
	if c.Track.ClearZone < 0 {
		errs = append(errs, fmt.Errorf("track.clear_zone must not be negative, got %v", c.Track.ClearZone))
	}
	if c.Track.RoadWidth > 0 && c.HalfRoad() <= 0 {
		errs = append(errs, fmt.Errorf("track.road_width %v leaves no room to ride", c.Track.RoadWidth))
	}

	positive("skater.min_speed", c.Skater.MinSpeed)
	positive("skater.max_speed", c.Skater.MaxSpeed)
	positive("skater.accel", c.Skater.Accel)
	positive("skater.friction", c.Skater.Friction)
	positive("skater.brake_decel", c.Skater.BrakeDecel)
	positive("skater.recover", c.Skater.Recover)
	positive("skater.turn_speed", c.Skater.TurnSpeed)
	positive("skater.jump_power", c.Skater.JumpPower)
	positive("skater.gravity", c.Skater.Gravity)
	if c.Skater.MinSpeed > c.Skater.MaxSpeed {
		errs = append(errs, fmt.Errorf("skater.min_speed %v exceeds max_speed %v", c.Skater.MinSpeed, c.Skater.MaxSpeed))
	}
	if c.Skater.Friction > 1 {
		errs = append(errs, fmt.Errorf("skater.friction must not exceed 1, got %v", c.Skater.Friction))
	}

	positive("traffic.speed", c.Traffic.Speed)
	positive("traffic.min_car_spacing", c.Traffic.MinCarSpacing)
	probability("traffic.spawn_chance", c.Traffic.SpawnChance)

	probability("hazards.barrier_chance", c.Hazards.BarrierChance)
	probability("hazards.fence_chance", c.Hazards.FenceChance)
	probability("hazards.crack_chance", c.Hazards.CrackChance)
	positive("hazards.plain_height", c.Hazards.PlainHeight)
	positive("hazards.fenced_height", c.Hazards.FencedHeight)

	positive("collision.car_reach", c.Collision.CarReach)
	positive("collision.car_half_width", c.Collision.CarHalfWidth)
	positive("collision.car_clearance", c.Collision.CarClearance)
	positive("collision.barrier_half_width", c.Collision.BarrierHalfWidth)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid skate config: %w", errors.Join(errs...))
	}
	return nil
}
