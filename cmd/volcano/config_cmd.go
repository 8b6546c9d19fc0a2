package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/volcano-flap/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Load the configuration the game would use and print it as YAML.

The source (file path, "embedded" or "builtin") goes to stderr so the
output can be redirected into a file and edited:

  volcano config > ~/.volcano/configs/volcano.yaml
  volcano config --config ./my-volcano.toml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom game config (YAML or TOML)")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Apply a difficulty preset before printing")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// effectiveConfig loads --config and applies --difficulty.
func effectiveConfig() (config.VolcanoConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.VolcanoConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, source, err := config.LoadVolcano(flagConfig)
	if err != nil {
		return config.VolcanoConfig{}, err
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	warnSkipped(source)

	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}
