package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/volcano-flap/internal/logging"
	"github.com/vovakirdan/volcano-flap/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagEnvFile     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Volcano Flap SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode picker menu and its
own simulation. Scores are stored per-server (all users share the same
leaderboard) and every run is recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.volcano/host_key

Environment (read from --env-file when given, flags win):
  VOLCANO_SSH_ADDR, VOLCANO_HOST_KEY, VOLCANO_DB, VOLCANO_IDLE_TIMEOUT,
  VOLCANO_LOG_LEVEL

Examples:
  volcano serve                           # Listen on :23234 with auto-generated key
  volcano serve --ssh :2222               # Listen on port 2222
  volcano serve --host-key ./my_host_key  # Use specific host key
  volcano serve --env-file ./volcano.env  # Read defaults from a dotenv file

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "Load VOLCANO_* settings from a dotenv file")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom game config (YAML or TOML)")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyEnv fills flags the user did not set from VOLCANO_* variables.
func applyEnv(cmd *cobra.Command) error {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil {
			return fmt.Errorf("--env-file: %w", err)
		}
	}

	bind := func(flag, env string, dst *string) {
		if v, ok := os.LookupEnv(env); ok && v != "" && !cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	bind("ssh", "VOLCANO_SSH_ADDR", &flagSSHAddr)
	bind("host-key", "VOLCANO_HOST_KEY", &flagHostKey)
	bind("db", "VOLCANO_DB", &flagDBPath)
	bind("log-level", "VOLCANO_LOG_LEVEL", &flagLogLevel)

	if v, ok := os.LookupEnv("VOLCANO_IDLE_TIMEOUT"); ok && v != "" && !cmd.Flags().Changed("idle-timeout") {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("VOLCANO_IDLE_TIMEOUT: %w", err)
		}
		flagIdleTimeout = minutes
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := applyEnv(cmd); err != nil {
		return err
	}
	if err := prepareGame(); err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, flagLogLevel, "volcano-ssh")
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Volcano Flap SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
