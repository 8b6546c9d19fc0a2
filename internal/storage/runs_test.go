package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		GameID:   "volcano",
		Player:   "ash",
		Score:    1200,
		Ending:   "micky",
		Cleared:  9,
		Duration: 42500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveRun() should assign an ID")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.ID != id || run.Player != "ash" || run.Score != 1200 || run.Ending != "micky" || run.Cleared != 9 {
		t.Errorf("Unexpected run: %+v", run)
	}
	if run.Duration != 42500*time.Millisecond {
		t.Errorf("Duration = %v, want 42.5s", run.Duration)
	}

	high, err := store.HighScore("volcano")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("SaveRun() should also record the score, high = %d", high)
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.New()

	got, err := store.SaveRun(Run{ID: want, GameID: "volcano", Score: 10, Ending: "jugo"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if got != want {
		t.Errorf("SaveRun() = %v, want %v", got, want)
	}

	if _, err := store.SaveRun(Run{ID: want, GameID: "volcano", Score: 20, Ending: "jugo"}); err == nil {
		t.Error("Saving a duplicate run ID should fail")
	}
	scores, _ := store.AllScores("volcano")
	if len(scores) != 1 {
		t.Errorf("A failed run must not leave a score behind, got %d scores", len(scores))
	}
}

func TestRunByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.RunByID(uuid.New())
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRecentRunsAndEndingCounts(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{GameID: "volcano", Score: 100, Ending: "jugo"},
		{GameID: "volcano", Score: 700, Ending: "calle"},
		{GameID: "volcano", Score: 50, Ending: "jugo"},
		{GameID: "volcano_smooth", Score: 4000, Ending: "rene"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("volcano", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Score != 50 || runs[1].Score != 700 {
		t.Errorf("Runs should be newest first, got %d then %d", runs[0].Score, runs[1].Score)
	}

	counts, err := store.EndingCounts("volcano")
	if err != nil {
		t.Fatalf("EndingCounts() failed: %v", err)
	}
	if counts["jugo"] != 2 || counts["calle"] != 1 || counts["rene"] != 0 {
		t.Errorf("Unexpected ending counts: %v", counts)
	}
}

func TestClearScoresRemovesRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{GameID: "volcano", Score: 100, Ending: "jugo"})
	store.SaveRun(Run{GameID: "volcano_smooth", Score: 100, Ending: "jugo"})

	if err := store.ClearScores("volcano"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	runs, _ := store.RecentRuns("volcano", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
	other, _ := store.RecentRuns("volcano_smooth", 10)
	if len(other) != 1 {
		t.Error("Other games should keep their runs")
	}
}

func TestBestRunsOrder(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{GameID: "volcano", Player: "ash", Score: 300, Ending: "jugo"},
		{GameID: "volcano", Player: "misty", Score: 1500, Ending: "micky"},
		{GameID: "volcano", Player: "brock", Score: 300, Ending: "jugo"},
		{GameID: "volcano_smooth", Player: "gary", Score: 9000, Ending: "rene"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.BestRuns("volcano", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	want := []string{"misty", "ash", "brock"}
	for i, r := range runs {
		if r.Player != want[i] {
			t.Errorf("runs[%d] = %s (%d), want %s", i, r.Player, r.Score, want[i])
		}
	}
}
