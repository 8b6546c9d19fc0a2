package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/volcano-flap/internal/config"
	"github.com/vovakirdan/volcano-flap/internal/games/volcano"
	"github.com/vovakirdan/volcano-flap/internal/platform/tui"
	"github.com/vovakirdan/volcano-flap/internal/registry"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
	flagMusic      string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Volcano Flap",
	Long: `Start a game straight away, skipping the menu.

Controls:
  Space/Up/W  - Flap
  Enter       - Start / play again
  P           - Pause
  R           - Restart (after game over)
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Modes:
  volcano         - Fixed per-frame physics, the classic feel
  volcano_smooth  - Physics scaled by real frame time

Difficulty options:
  easy    - Progression from the lowest level, one extra life
  normal  - Progression from 30%
  hard    - Progression from 70%, a single life
  fixed   - No progression (default)

Examples:
  volcano play
  volcano play --mode volcano_smooth
  volcano play --difficulty hard
  volcano play --config ./my-volcano.toml
  volcano play --music "mpv --no-video --loop=inf --volume=40"`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", volcano.IDClassic, "Game mode: volcano or volcano_smooth")
	addGameFlags(playCmd)
	addGameFlags(rootCmd)
}

// addGameFlags registers the flags shared by play and the menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom game config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagMusic, "music", "", "Player command for the soundtrack, e.g. \"mpv --no-video --loop=inf\"")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your runs (default: current user)")
}

// prepareGame validates the game flags and hands them to the volcano package.
func prepareGame() error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	// Fail before the terminal is taken over rather than fall back silently.
	_, src, err := config.LoadVolcano(flagConfig)
	if err != nil {
		return err
	}
	warnSkipped(src)
	volcano.SetConfigPath(flagConfig)
	volcano.SetDifficultyPreset(flagDifficulty)
	return nil
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagMode) {
		fmt.Fprintln(os.Stderr, "Run 'volcano list' to see available modes.")
		return fmt.Errorf("unknown mode %q", flagMode)
	}
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

	game, err := registry.Create(flagMode)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "mode", flagMode, "difficulty", flagDifficulty)
	return tui.Run(game, runtimeConfig(),
		tui.WithStore(store),
		tui.WithSoundtrack(music),
		tui.WithLogger(logger),
		tui.WithPlayer(playerName()),
	)
}
