package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the best finished runs",
	Long: `Display the highest scoring finished runs.

Examples:
  nightskate scores
  nightskate scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(skate.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Night Skate")
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'nightskate play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-9s  %-18s  %s\n", "Rank", "Score", "Distance", "Cause", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-9s  %-18s  %s\n", "----", "-----", "--------", "-----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-9.1f  %-18s  %s\n",
			i+1, r.Score, r.Distance, r.Cause, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(skate.GameID)
	if err == nil && stats.Runs > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  |  Runs: %d  |  Average: %.0f  |  Total distance: %.0f\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.TotalDistance)
	}
	return nil
}
