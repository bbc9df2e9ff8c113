package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nightskate/internal/platform/tui"
	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse runs and statistics",
	Long: `Open an interactive scoreboard with the top and most recent runs.

Controls:
  Up/Down    - Scroll
  Tab        - Switch between top and recent runs
  Q/Esc      - Quit`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(store, skate.GameID, "Night Skate", width, height)
}
