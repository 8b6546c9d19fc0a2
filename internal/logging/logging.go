// Package logging builds the charmbracelet/log loggers used across the
// game. The TUI owns the terminal, so interactive runs log to a file or
// nowhere; the SSH server logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w at the named level
// ("debug", "info", "warn", "error").
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Open returns a logger appending to path, creating parent directories.
// An empty path yields a logger that discards everything. The returned
// close function is never nil.
func Open(path, level, prefix string) (*log.Logger, func() error, error) {
	if path == "" {
		logger, err := New(io.Discard, level, prefix)
		return logger, noop, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, noop, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}

	logger, err := New(f, level, prefix)
	if err != nil {
		f.Close()
		return nil, noop, err
	}
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func noop() error { return nil }
