package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "volcano")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "lives", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "lives=1") || !strings.Contains(out, "volcano") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", ""); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "volcano.log")
	logger, closeFn, err := Open(path, "debug", "test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Debug("frame", "n", 3)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "n=3") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := Open("", "", "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Error("nowhere")
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}
