// Package sim runs the physics engine against a virtual desktop without a
// real window, replaying a scripted throw and recording what happens.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/bouncy/internal/model"
	"github.com/jmylchreest/bouncy/internal/physics"
)

// DefaultMaxTicks bounds a run that never settles (e.g. zero gravity).
const DefaultMaxTicks = 100_000

// Validation errors.
var (
	ErrTooFewSamples   = errors.New("a throw needs at least 2 samples")
	ErrNegativeSpan    = errors.New("throw duration must not be negative")
	ErrWindowTooLarge  = errors.New("window does not fit inside the work area")
	ErrInvalidMaxTicks = errors.New("max ticks must be positive")
)

// Desktop is an in-memory platform with a fixed work area.
type Desktop struct {
	geo   model.Geometry
	pos   model.Point
	moves int
}

// NewDesktop creates a desktop with the window placed at start.
func NewDesktop(geo model.Geometry, start model.Point) *Desktop {
	return &Desktop{geo: geo, pos: start}
}

// Geometry implements physics.Platform.
func (d *Desktop) Geometry() model.Geometry {
	return d.geo
}

// SetPosition implements physics.Platform.
func (d *Desktop) SetPosition(x, y int) {
	d.pos = model.Point{X: x, Y: y}
	d.moves++
}

// Position returns where the window currently is.
func (d *Desktop) Position() model.Point {
	return d.pos
}

// Moves returns how many times the window was moved.
func (d *Desktop) Moves() int {
	return d.moves
}

// Throw is a straight-line drag from From to To, sampled evenly.
type Throw struct {
	From     model.Point
	To       model.Point
	Duration time.Duration
	Samples  int
}

// Points returns the drag samples of the throw with timestamps in ms from 0.
func (t Throw) Points() []model.Sample {
	out := make([]model.Sample, t.Samples)
	last := t.Samples - 1
	for i := range out {
		frac := float64(i) / float64(last)
		out[i] = model.Sample{
			X:         t.From.X + int(float64(t.To.X-t.From.X)*frac),
			Y:         t.From.Y + int(float64(t.To.Y-t.From.Y)*frac),
			Timestamp: int64(float64(t.Duration.Milliseconds()) * frac),
		}
	}
	return out
}

// Options configure a simulation run.
type Options struct {
	Engine       physics.Options
	Geometry     model.Geometry
	Throw        Throw
	MaxTicks     int64
	RecordFrames bool
	Logger       *slog.Logger
}

// Validate checks that the run can be performed.
func (o Options) Validate() error {
	if o.Throw.Samples < 2 {
		return ErrTooFewSamples
	}
	if o.Throw.Duration < 0 {
		return ErrNegativeSpan
	}
	if o.MaxTicks <= 0 {
		return ErrInvalidMaxTicks
	}
	if o.Geometry.WindowWidth > o.Geometry.ScreenWidth() || o.Geometry.WindowHeight > o.Geometry.ScreenHeight() {
		return ErrWindowTooLarge
	}
	return nil
}

// Run replays the throw, then ticks until the window comes to rest,
// MaxTicks is reached or ctx is cancelled.
func Run(ctx context.Context, opts Options) (*model.Trace, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runID, err := model.NewRunID()
	if err != nil {
		return nil, err
	}

	desktop := NewDesktop(opts.Geometry, opts.Throw.From)
	trace := &model.Trace{
		RunID:        runID,
		StartedAt:    time.Now(),
		TickInterval: opts.Engine.TickInterval.String(),
		Gravity:      opts.Engine.Constants.Gravity,
		Friction:     opts.Engine.Constants.Friction,
		BounceFactor: opts.Engine.Constants.BounceFactor,
		Geometry:     opts.Geometry,
		Release:      opts.Throw.To,
	}

	engineOpts := opts.Engine
	engineOpts.Start = opts.Throw.From
	engineOpts.Logger = logger
	engineOpts.Hooks.OnBounce = func(b model.Bounce) {
		trace.Bounces = append(trace.Bounces, b)
	}
	engine := physics.NewEngine(desktop, engineOpts)

	engine.HandleEvent(physics.DragStartEvent{})
	for _, s := range opts.Throw.Points() {
		// the window follows the pointer while dragged
		desktop.SetPosition(s.X, s.Y)
		engine.HandleEvent(physics.SampleEvent{X: s.X, Y: s.Y, TimestampMs: s.Timestamp})
	}
	release := desktop.Position()
	engine.HandleEvent(physics.DragEndEvent{X: release.X, Y: release.Y})

	body := engine.Body()
	trace.ReleaseVelX = body.VelX
	trace.ReleaseVelY = body.VelY
	logger.Debug("released", "run", runID, "x", release.X, "y", release.Y, "vel_x", body.VelX, "vel_y", body.VelY)

	for tick := int64(1); tick <= opts.MaxTicks; tick++ {
		if tick%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("simulation interrupted at tick %d: %w", tick, err)
			}
		}

		engine.HandleEvent(physics.TickEvent{})
		body = engine.Body()
		trace.Ticks = tick

		if opts.RecordFrames {
			trace.Frames = append(trace.Frames, model.Frame{
				Tick: tick,
				X:    body.PosX,
				Y:    body.PosY,
				VelX: body.VelX,
				VelY: body.VelY,
			})
		}

		if body.Resting(desktop.Geometry()) {
			trace.SettledAt = tick
			break
		}
	}

	trace.Final = desktop.Position()
	if trace.SettledAt == 0 {
		logger.Warn("window did not come to rest", "run", runID, "ticks", trace.Ticks)
	}
	return trace, nil
}
