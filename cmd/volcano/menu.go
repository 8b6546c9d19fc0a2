package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/volcano-flap/internal/platform/tui"
)

// runMenu opens the mode picker. After a game ends the player returns to it.
func runMenu(_ *cobra.Command, _ []string) error {
	if err := prepareGame(); err != nil {
		return err
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // nothing left to report to

	music, err := soundtrack(flagMusic)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(store, runtimeConfig(), playerName(), music, logger)
}
