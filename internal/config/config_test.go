package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML SkateConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != DefaultSkateConfig() {
		t.Errorf("embedded YAML and DefaultSkateConfig() differ:\n%+v\n%+v", fromYAML, DefaultSkateConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultSkateConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := DefaultSkateConfig()
	cfg.Skater.MaxSpeed = -1
	cfg.Traffic.SpawnChance = 1.5
	cfg.Track.VisibleSegments = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"skater.max_speed", "traffic.spawn_chance", "track.visible_segments"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestLoadSkateCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skate.yaml")
	data := "skater:\n  max_speed: 0.8\ntraffic:\n  spawn_chance: 0.3\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkate(path)
	if err != nil {
		t.Fatalf("LoadSkate() failed: %v", err)
	}
	if cfg.Skater.MaxSpeed != 0.8 {
		t.Errorf("MaxSpeed = %v, expected 0.8", cfg.Skater.MaxSpeed)
	}
	if cfg.Traffic.SpawnChance != 0.3 {
		t.Errorf("SpawnChance = %v, expected 0.3", cfg.Traffic.SpawnChance)
	}
	if cfg.Skater.MinSpeed != DefaultSkateConfig().Skater.MinSpeed {
		t.Errorf("unset keys should keep defaults, MinSpeed = %v", cfg.Skater.MinSpeed)
	}
}

func TestLoadSkateCustomPathErrors(t *testing.T) {
	if _, err := LoadSkate(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("skater:\n  gravity: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkate(path); err == nil {
		t.Error("invalid custom config should be an error")
	}
}

func TestApplySkatePreset(t *testing.T) {
	tests := []struct {
		preset   Preset
		maxSpeed float64
	}{
		{PresetChill, 0.5},
		{PresetNormal, 0.6},
		{PresetRush, 0.7},
		{"", 0.6},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSkateConfig()
			ApplySkatePreset(&cfg, tc.preset)
			if cfg.Skater.MaxSpeed != tc.maxSpeed {
				t.Errorf("MaxSpeed = %v, expected %v", cfg.Skater.MaxSpeed, tc.maxSpeed)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should validate: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("rush") != PresetRush {
		t.Error("rush should parse")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}

func TestDerivedGeometry(t *testing.T) {
	cfg := DefaultSkateConfig()
	if cfg.HalfRoad() != 5.5 {
		t.Errorf("HalfRoad() = %v, expected 5.5", cfg.HalfRoad())
	}
	if cfg.WindowLength() != 225 {
		t.Errorf("WindowLength() = %v, expected 225", cfg.WindowLength())
	}
}

func TestReadEnv(t *testing.T) {
	vars := map[string]string{
		EnvDBPath: "/tmp/runs.db",
		EnvFPS:    "30",
		EnvSeed:   "42",
		EnvHoldMS: "not-a-number",
	}
	env := ReadEnv(func(k string) string { return vars[k] })

	if env.DBPath != "/tmp/runs.db" || env.FPS != 30 || env.Seed != 42 || !env.SeedSet {
		t.Errorf("ReadEnv() = %+v", env)
	}
	if env.HoldMS != DefaultEnv().HoldMS {
		t.Errorf("invalid hold ms should keep default, got %d", env.HoldMS)
	}
	if env.WebAddr != DefaultEnv().WebAddr {
		t.Errorf("unset web addr should keep default, got %q", env.WebAddr)
	}
}

func TestReadEnvSeed(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantSet bool
	}{
		{"unset", "", 0, false},
		{"zero", "0", 0, true},
		{"negative", "-9", -9, true},
		{"garbage", "seven", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := ReadEnv(func(k string) string {
				if k == EnvSeed {
					return tt.value
				}
				return ""
			})
			if env.Seed != tt.want || env.SeedSet != tt.wantSet {
				t.Errorf("Seed = %d set %v, want %d set %v", env.Seed, env.SeedSet, tt.want, tt.wantSet)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(EnvWebAddr+"=:9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvWebAddr, "")
	os.Unsetenv(EnvWebAddr)

	env, err := LoadEnv(path, filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadEnv() failed: %v", err)
	}
	if env.WebAddr != ":9999" {
		t.Errorf("WebAddr = %q, expected :9999", env.WebAddr)
	}
}
