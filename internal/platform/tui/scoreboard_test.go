package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/volcano-flap/internal/storage"
)

func TestScoreboardShowsBestRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{GameID: "stub", Player: "ash", Score: 400, Ending: "jugo"},
		{GameID: "stub", Player: "misty", Score: 1200, Ending: "micky"},
		{GameID: "stub", Player: "brock", Score: 90, Ending: "jugo"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "1200" || rows[0][2] != "misty" || rows[0][3] != "micky" {
		t.Errorf("first row = %v", rows[0])
	}

	if got := m.endingSummary(); got != "Finales: jugo ×2  micky ×1" {
		t.Errorf("summary = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, "misty") || !strings.Contains(view, "Mejor 1200") {
		t.Errorf("view misses the best run:\n%s", view)
	}
}

func TestScoreboardEmptyAndBack(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "Sin récords") {
		t.Error("an empty board should say so")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sb := next.(ScoreboardModel)
	if !sb.IsGoingBack() || sb.IsQuitting() || cmd == nil {
		t.Error("esc should leave the board without quitting")
	}
}
