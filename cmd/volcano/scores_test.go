package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/volcano-flap/internal/storage"
)

func seededStore(t *testing.T) (*storage.Store, uuid.UUID) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	var last uuid.UUID
	for score := 100; score <= 1500; score += 100 {
		last, err = store.SaveRun(storage.Run{
			GameID:   "volcano",
			Player:   "ash",
			Score:    score,
			Ending:   "jugo",
			Cleared:  score / 100,
			Duration: 12 * time.Second,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveRun(storage.Run{GameID: "volcano_smooth", Score: 3500, Ending: "rene"}); err != nil {
		t.Fatal(err)
	}
	return store, last
}

func TestPrintScoresLimit(t *testing.T) {
	store, _ := seededStore(t)

	tests := []struct {
		limit int
		rows  int
	}{
		{limit: 3, rows: 3},
		{limit: 0, rows: 15},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := printScores(&buf, store, "volcano", tt.limit); err != nil {
			t.Fatalf("limit %d: %v", tt.limit, err)
		}
		out := buf.String()
		if !strings.Contains(out, "  1     1500") {
			t.Errorf("limit %d: best score should rank first:\n%s", tt.limit, out)
		}
		if got := rankedRows(out); got != tt.rows {
			t.Errorf("limit %d: %d ranked rows, want %d", tt.limit, got, tt.rows)
		}
		if !strings.Contains(out, "jugo       15") {
			t.Errorf("limit %d: endings missing:\n%s", tt.limit, out)
		}
	}
}

// rankedRows counts the lines of the score table.
func rankedRows(out string) int {
	lines := strings.Split(out, "\n")
	n := 0
	inTable := false
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "  ----"):
			inTable = true
		case inTable && strings.TrimSpace(l) == "":
			return n
		case inTable:
			n++
		}
	}
	return n
}

func TestPrintRun(t *testing.T) {
	store, id := seededStore(t)

	var buf bytes.Buffer
	if err := printRun(&buf, store, id.String()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{id.String(), "Score    1500", "Player   ash", "Cleared  15 columns", "Time     12s"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}

	if err := printRun(&buf, store, uuid.NewString()); err == nil || !strings.Contains(err.Error(), "no run") {
		t.Errorf("unknown run: err = %v", err)
	}
	if err := printRun(&buf, store, "not-a-uuid"); err == nil {
		t.Error("a malformed ID should be rejected")
	}
}

func TestPrintAllStats(t *testing.T) {
	store, _ := seededStore(t)

	var buf bytes.Buffer
	if err := printAllStats(&buf, store); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two modes:\n%s", buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "volcano ") || !strings.Contains(lines[1], "1500") {
		t.Errorf("volcano row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "volcano_smooth") || !strings.Contains(lines[2], "3500") {
		t.Errorf("volcano_smooth row = %q", lines[2])
	}
}
