// volcano is a terminal Flappy Bird variant: Charizard is stuck in an
// endless volcano and has to flap through magma columns.
//
// Usage:
//
//	volcano                  - Pick a mode from the menu
//	volcano play             - Play straight away
//	volcano list             - List available modes
//	volcano scores           - Show high scores and endings
//	volcano serve            - Start SSH server for remote play
//	volcano config           - Print the effective configuration
//	volcano simulate         - Run a headless, scripted game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.volcano/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/volcano-flap/internal/games/volcano"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "volcano",
	Short: "Volcano Flap - fly Charizard out of the volcano",
	Long: `Volcano Flap is a terminal side-scroller. Charizard is trapped in an
endless volcano: flap between the magma columns, keep your three lives and
see which ending your score earns.

Available commands:
  play      - Play a mode directly
  list      - Show all available modes
  scores    - View high scores and endings reached
  serve     - Start SSH server for remote play
  config    - Print the effective configuration as YAML
  simulate  - Run a headless game with scripted jumps

Examples:
  volcano
  volcano play --difficulty hard
  volcano play --mode volcano_smooth --music "mpv --no-video --loop=inf"
  volcano serve --ssh :2222
  volcano simulate --frames 600 --seed 7 --jump-every 20`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.volcano/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive runs log nowhere by default)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}
