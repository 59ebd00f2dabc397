package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configOpts struct {
	init bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration bouncy will run with, after defaults are applied.

With --init, the configuration is also written to the config file so it
can be edited. Appearance and audio settings are picked up while bouncy is
running; physics settings apply on the next start.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configOpts.init, "init", false,
		"Write the effective configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configOpts.init {
		path := configPath()
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("config written", "path", path)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
