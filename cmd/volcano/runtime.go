package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/volcano-flap/internal/audio"
	"github.com/vovakirdan/volcano-flap/internal/config"
	"github.com/vovakirdan/volcano-flap/internal/core"
	"github.com/vovakirdan/volcano-flap/internal/logging"
	"github.com/vovakirdan/volcano-flap/internal/storage"
)

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// interactiveLogger logs to --log-file; the terminal belongs to the game.
func interactiveLogger() (*log.Logger, func() error, error) {
	return logging.Open(flagLogFile, flagLogLevel, "volcano")
}

// openStore opens the scores database. Play goes on without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// soundtrack builds the music player for --music, or a silent one.
func soundtrack(command string) (audio.Soundtrack, error) {
	if command == "" {
		return audio.Nop{}, nil
	}
	player, err := audio.NewCommand(command, audio.DefaultTrack)
	if err != nil {
		return nil, fmt.Errorf("--music: %w", err)
	}
	return player, nil
}

// warnSkipped logs broken config files to stderr before the terminal is
// taken over.
func warnSkipped(src config.Source) {
	if len(src.Skipped) == 0 {
		return
	}
	logger, err := logging.New(os.Stderr, flagLogLevel, "volcano")
	if err != nil {
		logger = logging.Discard()
	}
	for _, skipped := range src.Skipped {
		logger.Warn("config skipped", "using", src.Path, "err", skipped)
	}
}
