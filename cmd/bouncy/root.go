// Package main provides the CLI entrypoint for bouncy.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bouncy/internal/audio"
	"github.com/jmylchreest/bouncy/internal/config"
	"github.com/jmylchreest/bouncy/internal/model"
	"github.com/jmylchreest/bouncy/internal/tui"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger

	// audioEnabled is flipped by config reloads from the watcher goroutine
	audioEnabled atomic.Bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bouncy",
	Short: "A window you can throw around the terminal",
	Long: `bouncy puts a small window on a virtual desktop inside your terminal.

Drag it with the mouse and let go: it keeps the velocity of your gesture,
falls under gravity, loses speed to friction and bounces off the edges of
the work area until it comes to rest on the floor.

Key bindings:
  space       Toss the window
  r           Reset to the start position
  ?           Show help
  q           Quit`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/bouncy/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runTUI(cmd *cobra.Command, args []string) error {
	player := audio.NewPlayer(logger)
	defer player.Close()
	applyAudio(player, cfg.Audio)

	return tui.Run(tui.RunOptions{
		Config:     cfg,
		ConfigPath: configPath(),
		Logger:     logger,
		OnBounce: func(b model.Bounce) {
			if audioEnabled.Load() {
				player.OnBounce(b)
			}
		},
		OnConfig: func(c *config.Config) {
			applyAudio(player, c.Audio)
		},
	})
}

// applyAudio pushes audio settings to the player.
func applyAudio(player *audio.Player, ac config.AudioConfig) {
	audioEnabled.Store(ac.Enabled)
	player.SetVolume(float64(ac.Volume) / 100)
	player.SetMinImpact(ac.MinImpact)
	player.SetSound(ac.Sound)
	if ac.Enabled {
		if err := player.Preload(); err != nil {
			logger.Warn("failed to load bounce sound", "error", err)
		}
	}
}
