package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyhop/internal/platform/tui"
	"github.com/vovakirdan/skyhop/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs and lifetime totals.

Examples:
  skyhop scores
  skyhop scores --limit 25
  skyhop scores --interactive
  skyhop scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a scrollable table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (settings are kept)")
}

func runScores(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	store, _, closeStore, err := openPrefs(logger)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer closeStore()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			closeStore()
			fatal("clearing runs: %v", err)
		}
		fmt.Println("Run history cleared.")

	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			closeStore()
			fatal("running scoreboard: %v", err)
		}

	default:
		if err := printScores(os.Stdout, store, flagScoresLimit); err != nil {
			closeStore()
			fatal("%v", err)
		}
	}
}

// printScores writes the best runs and the totals as plain text.
func printScores(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.TopRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintln(w, "High Scores - Skyhop")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'skyhop play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-5s  %-8s  %-12s  %s\n", "Rank", "Score", "Coins", "Time", "Character", "Date")
	fmt.Fprintf(w, "  %-4s  %-7s  %-5s  %-8s  %-12s  %s\n", "----", "-----", "-----", "----", "---------", "----")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-7d  %-5d  %-8s  %-12s  %s\n",
			i+1, r.Score, r.Coins, r.Duration.Round(100*time.Millisecond), r.Character,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	totals, err := store.RunTotals()
	if err != nil {
		return fmt.Errorf("retrieving totals: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d   Runs: %d   Avg: %.1f   Coins: %d   Played: %s\n",
		totals.BestScore, totals.Runs, totals.AvgScore, totals.TotalCoins, totals.TotalTime.Round(time.Second))
	return nil
}
