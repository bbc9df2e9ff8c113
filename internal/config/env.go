package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names for process settings.
const (
	EnvDBPath  = "NIGHTSKATE_DB"
	EnvFPS     = "NIGHTSKATE_FPS"
	EnvSeed    = "NIGHTSKATE_SEED"
	EnvHoldMS  = "NIGHTSKATE_HOLD_MS"
	EnvWebAddr = "NIGHTSKATE_WEB_ADDR"
)

// Env holds process settings read from the environment. CLI flags take
// precedence; these only replace the built-in flag defaults.
//
// Zero is an ordinary seed. SeedSet tells an explicit NIGHTSKATE_SEED=0
// apart from no seed at all, which means a time-based seed per run.
type Env struct {
	DBPath  string
	FPS     int
	Seed    int64
	SeedSet bool
	HoldMS  int
	WebAddr string
}

// DefaultEnv returns the settings used when nothing is configured.
func DefaultEnv() Env {
	return Env{
		DBPath:  "~/.nightskate/scores.db",
		FPS:     60,
		Seed:    0,
		HoldMS:  180,
		WebAddr: ":8080",
	}
}

// LoadEnv loads .env files into the process environment (existing variables
// win) and returns the resulting settings. Missing files are not an error.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return DefaultEnv(), err
		}
	}
	return ReadEnv(os.Getenv), nil
}

// ReadEnv builds settings from a lookup function. Unparseable numbers keep
// their defaults.
func ReadEnv(getenv func(string) string) Env {
	env := DefaultEnv()
	if v := getenv(EnvDBPath); v != "" {
		env.DBPath = v
	}
	if v, err := strconv.Atoi(getenv(EnvFPS)); err == nil && v > 0 {
		env.FPS = v
	}
	if v, err := strconv.ParseInt(getenv(EnvSeed), 10, 64); err == nil {
		env.Seed = v
		env.SeedSet = true
	}
	if v, err := strconv.Atoi(getenv(EnvHoldMS)); err == nil && v > 0 {
		env.HoldMS = v
	}
	if v := getenv(EnvWebAddr); v != "" {
		env.WebAddr = v
	}
	return env
}
