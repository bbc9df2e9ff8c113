// nightskate is an endless skateboarding runner for the terminal.
//
// Usage:
//
//	nightskate play            - Skate in this terminal
//	nightskate scores          - Print the best finished runs
//	nightskate board           - Browse runs and statistics
//	nightskate serve           - Start SSH server for remote play
//	nightskate demo            - Let the autopilot skate headless
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible runs
//	--db <path>       - Set database path (default: ~/.nightskate/scores.db)
//	--hold-ms <ms>    - How long a key press keeps a movement held
//
// Defaults for these flags come from NIGHTSKATE_* variables, optionally
// loaded from a .env file in the working directory.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/nightskate/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagHoldMS int

	// env holds the process settings the flag defaults were taken from.
	env = config.DefaultEnv()
)

func main() {
	loaded, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
	env = loaded
	applyEnvDefaults(rootCmd, env)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nightskate",
	Short: "Night Skate - an endless skateboarding runner in your terminal",
	Long: `Night Skate is an endless runner: skate down a night street, dodge
barriers and traffic, and go as far as you can.

Available commands:
  play     - Skate in this terminal
  scores   - Print the best finished runs
  board    - Browse runs and statistics
  serve    - Start SSH server for remote play
  demo     - Headless autopilot run

Examples:
  nightskate play
  nightskate play --preset rush --broadcast
  nightskate serve --ssh :2222
  nightskate demo --ticks 5000 --web :8080`,
	SilenceUsage: true,
}

func init() {
	def := config.DefaultEnv()
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", def.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", def.Seed, "RNG seed (random per run when unset)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", def.DBPath, "Path to runs database")
	rootCmd.PersistentFlags().IntVar(&flagHoldMS, "hold-ms", def.HoldMS, "Milliseconds a key press keeps a movement held")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
}

// applyEnvDefaults replaces the built-in flag defaults with env values.
// Flags given on the command line are parsed later and still win.
func applyEnvDefaults(root *cobra.Command, e config.Env) {
	set := func(fs *pflag.FlagSet, name, value string) {
		if f := fs.Lookup(name); f != nil {
			f.Value.Set(value)
			f.DefValue = value
		}
	}
	pf := root.PersistentFlags()
	set(pf, "fps", strconv.Itoa(e.FPS))
	set(pf, "seed", strconv.FormatInt(e.Seed, 10))
	set(pf, "db", e.DBPath)
	set(pf, "hold-ms", strconv.Itoa(e.HoldMS))

	// A bare --broadcast or --web listens on the configured address.
	for _, c := range root.Commands() {
		for _, name := range []string{"broadcast", "web"} {
			if f := c.Flags().Lookup(name); f != nil {
				f.NoOptDefVal = e.WebAddr
			}
		}
	}
}

func holdDuration() time.Duration {
	return time.Duration(flagHoldMS) * time.Millisecond
}

// resolveSeed returns the seed given by --seed or NIGHTSKATE_SEED, zero
// included, and a time-based seed when neither is set.
func resolveSeed(fs *pflag.FlagSet, e config.Env) int64 {
	if f := fs.Lookup("seed"); f != nil && (f.Changed || e.SeedSet) {
		if v, err := fs.GetInt64("seed"); err == nil {
			return v
		}
	}
	return time.Now().UnixNano()
}
