package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/volcano-flap/internal/games/volcano"
	"github.com/vovakirdan/volcano-flap/internal/platform/tui"
	"github.com/vovakirdan/volcano-flap/internal/registry"
	"github.com/vovakirdan/volcano-flap/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresRun         string
	flagScoresAll         bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and endings",
	Long: `Display the best scores, the most recent runs and how often each
ending was reached for a mode (default: volcano).

Examples:
  volcano scores
  volcano scores volcano_smooth --limit 20
  volcano scores --limit 0                 # every score ever recorded
  volcano scores --run 5b0c...             # details of one run
  volcano scores --all                     # totals for every mode
  volcano scores volcano_smooth --clear    # forget a mode's history
  volcano scores -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse all modes in the scoreboard")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show one run by its ID")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show totals for every mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := volcano.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'volcano list' to see available modes.")
		return fmt.Errorf("unknown mode %q", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	case flagScoresRun != "":
		return printRun(out, store, flagScoresRun)
	case flagScoresAll:
		return printAllStats(out, store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all scores for %s.\n", gameID)
		return nil
	}

	return printScores(out, store, gameID, flagScoresLimit)
}

func printScores(w io.Writer, store *storage.Store, gameID string, limit int) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	var scores []storage.ScoreEntry
	if limit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, limit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'volcano play --mode %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(w, "\nBest: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	runs, err := store.RecentRuns(gameID, 5)
	if err == nil && len(runs) > 0 {
		fmt.Fprintln(w, "\nRecent runs:")
		for _, r := range runs {
			fmt.Fprintf(w, "  %s  %-8d  %-12s  %-8s  %s\n", r.ID, r.Score, orDash(r.Player), r.Ending, r.Duration.Round(100*time.Millisecond))
		}
	}

	counts, err := store.EndingCounts(gameID)
	if err == nil && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "\nEndings reached:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %-10s %d\n", k, counts[k])
		}
	}
	return nil
}

func printRun(w io.Writer, store *storage.Store, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("--run: %w", err)
	}

	run, err := store.RunByID(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run with ID %s", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run      %s\n", run.ID)
	fmt.Fprintf(w, "Mode     %s\n", run.GameID)
	fmt.Fprintf(w, "Player   %s\n", orDash(run.Player))
	fmt.Fprintf(w, "Score    %d\n", run.Score)
	fmt.Fprintf(w, "Ending   %s\n", run.Ending)
	fmt.Fprintf(w, "Cleared  %d columns\n", run.Cleared)
	fmt.Fprintf(w, "Time     %s\n", run.Duration.Round(100*time.Millisecond))
	fmt.Fprintf(w, "Date     %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printAllStats(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-16s  %-8s  %-6s  %s\n", "Mode", "Best", "Games", "Last played")
	for _, id := range ids {
		s := stats[id]
		fmt.Fprintf(w, "  %-16s  %-8d  %-6d  %s\n", id, s.HighScore, s.GamesCount, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
