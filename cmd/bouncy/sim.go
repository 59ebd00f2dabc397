package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bouncy/internal/model"
	"github.com/jmylchreest/bouncy/internal/output"
	"github.com/jmylchreest/bouncy/internal/sim"
)

var simOpts struct {
	// Throw options
	from     string
	to       string
	duration time.Duration
	samples  int

	// Desktop options
	screen string

	// Run options
	maxTicks int64

	// Output options
	format   string
	frames   bool
	template string
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate a throw without a terminal",
	Long: `Replay a straight-line drag on a virtual desktop and print the resulting
flight: release velocity, every bounce and where the window came to rest.

The window size and physics constants come from the config file.

Examples:
  # Flick the window up and to the right
  bouncy sim --from 100,600 --to 400,300 --duration 300ms

  # Full per-tick trace as JSON
  bouncy sim --frames --format json

  # Custom frame lines
  bouncy sim --frames --template '{{.Tick}} {{.Y}}{{"\n"}}'`,
	RunE: runSim,
}

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().StringVar(&simOpts.from, "from", "100,600",
		"Drag start position in pixels (x,y)")
	simCmd.Flags().StringVar(&simOpts.to, "to", "400,300",
		"Release position in pixels (x,y)")
	simCmd.Flags().DurationVar(&simOpts.duration, "duration", 300*time.Millisecond,
		"How long the drag takes")
	simCmd.Flags().IntVar(&simOpts.samples, "samples", 8,
		"Number of pointer samples along the drag")

	simCmd.Flags().StringVar(&simOpts.screen, "screen", "1920x1080",
		"Work area size in pixels (WIDTHxHEIGHT)")

	simCmd.Flags().Int64Var(&simOpts.maxTicks, "max-ticks", sim.DefaultMaxTicks,
		"Give up if the window has not settled after this many ticks")

	simCmd.Flags().StringVarP(&simOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	simCmd.Flags().BoolVar(&simOpts.frames, "frames", false,
		"Record and print every tick")
	simCmd.Flags().StringVar(&simOpts.template, "template", "",
		"Custom Go template for each frame (plain format)")
}

func runSim(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format, err := output.ParseFormat(simOpts.format)
	if err != nil {
		return err
	}

	from, err := parsePoint(simOpts.from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := parsePoint(simOpts.to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	width, height, err := parseSize(simOpts.screen)
	if err != nil {
		return fmt.Errorf("invalid --screen: %w", err)
	}

	engineOpts := cfg.EngineOptions()
	engineOpts.Logger = logger

	trace, err := sim.Run(ctx, sim.Options{
		Engine: engineOpts,
		Geometry: model.Geometry{
			WindowWidth:    cfg.Window.Width,
			WindowHeight:   cfg.Window.Height,
			WorkAreaRight:  width,
			WorkAreaBottom: height,
		},
		Throw: sim.Throw{
			From:     from,
			To:       to,
			Duration: simOpts.duration,
			Samples:  simOpts.samples,
		},
		MaxTicks:     simOpts.maxTicks,
		RecordFrames: simOpts.frames,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	formatterOpts := output.DefaultFormatterOptions()
	formatterOpts.ShowFrames = simOpts.frames
	formatterOpts.FrameTemplate = simOpts.template

	return output.NewFormatter(format, formatterOpts).Format(cmd.OutOrStdout(), trace)
}

// parsePoint parses "x,y".
func parsePoint(s string) (model.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return model.Point{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return model.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{X: x, Y: y}, nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("expected WIDTHxHEIGHT, got %q", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, err
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %q", s)
	}
	return w, h, nil
}
