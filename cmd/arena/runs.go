package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena/internal/storage"
)

var (
	flagRunsLevel string
	flagRunsLimit int
	flagRunsStats bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the best recorded runs",
	Long: `Display the top runs, optionally for one level, or per-level totals
with --stats.

Examples:
  arena runs
  arena runs --level fortress --limit 20
  arena runs --stats`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsLevel, "level", "", "Only show runs on this level")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-level totals instead")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagRunsStats {
		stats, err := store.AllLevelStats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "  %-12s  %-6s  %-6s  %-8s  %-6s  %s\n", "Level", "Runs", "Best", "Average", "Kills", "Last played")
		for _, name := range slices.Sorted(maps.Keys(stats)) {
			s := stats[name]
			fmt.Fprintf(out, "  %-12s  %-6d  %-6d  %-8.0f  %-6d  %s\n",
				name, s.Runs, s.HighScore, s.AvgScore, s.Kills, s.LastPlayed.Format("2006-01-02 15:04"))
		}
		return nil
	}

	runs, err := store.TopRuns(flagRunsLevel, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := "all levels"
	if flagRunsLevel != "" {
		title = flagRunsLevel
	}
	fmt.Fprintf(out, "Top runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Try 'arena run' or 'arena play' to record one!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-10s  %-5s  %-4s  %-4s  %-9s  %-10s  %s\n",
		"Rank", "Score", "Level", "Kills", "Wave", "Acc", "Mode", "Player", "Date")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-10s  %-5d  %-4d  %3.0f%%  %-9s  %-10s  %s\n",
			i+1, r.Score, r.Level, r.Kills, r.Waves, r.Accuracy()*100, r.Mode, r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
