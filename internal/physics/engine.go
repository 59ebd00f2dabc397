package physics

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/bouncy/internal/model"
)

// Platform is the windowing collaborator the Engine drives.
type Platform interface {
	// Geometry returns the current window size and work area.
	Geometry() model.Geometry
	// SetPosition moves the window without resizing it. The window stays topmost.
	SetPosition(x, y int)
}

// Hooks are optional observers. Nil fields are skipped.
type Hooks struct {
	// OnSample receives every accepted drag sample.
	OnSample func(x, y int)
	// OnVelocityReset is called when a drag starts and the velocity is zeroed.
	OnVelocityReset func()
	// OnBounce is called for each edge collision.
	OnBounce func(b model.Bounce)
}

// Event is a platform notification accepted by Engine.HandleEvent.
type Event interface {
	isEvent()
}

// TickEvent is fired at the nominal tick interval.
type TickEvent struct{}

// DragStartEvent is fired when the user grabs the window.
type DragStartEvent struct{}

// DragEndEvent is fired when the user lets go. X and Y are the window's
// actual position and override the simulated one.
type DragEndEvent struct {
	X, Y int
}

// SampleEvent carries a window position observed during a drag.
type SampleEvent struct {
	X, Y        int
	TimestampMs int64
}

func (TickEvent) isEvent()      {}
func (DragStartEvent) isEvent() {}
func (DragEndEvent) isEvent()   {}
func (SampleEvent) isEvent()    {}

// Options configure a new Engine.
type Options struct {
	Constants    Constants
	Limits       GestureLimits
	TickInterval time.Duration
	Start        model.Point
	Hooks        Hooks
	Logger       *slog.Logger
}

// DefaultOptions returns options with the standard constants and limits.
func DefaultOptions() Options {
	return Options{
		Constants:    DefaultConstants(),
		Limits:       DefaultGestureLimits(),
		TickInterval: DefaultTickInterval,
	}
}

// Engine owns a body and its drag history and reacts to platform events.
type Engine struct {
	body       BodyState
	estimator  *Estimator
	integrator *Integrator
	platform   Platform
	hooks      Hooks
	logger     *slog.Logger
}

// NewEngine creates an engine at rest at opts.Start.
func NewEngine(platform Platform, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		body: BodyState{
			PosX: opts.Start.X,
			PosY: opts.Start.Y,
		},
		estimator:  NewEstimator(opts.Limits),
		integrator: NewIntegrator(opts.Constants, opts.TickInterval),
		platform:   platform,
		hooks:      opts.Hooks,
		logger:     logger,
	}
}

// HandleEvent applies a single platform event. Events must be delivered
// serially; each call runs to completion before the next.
func (e *Engine) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case TickEvent:
		e.tick()
	case DragStartEvent:
		e.dragStart()
	case DragEndEvent:
		e.dragEnd(ev.X, ev.Y)
	case SampleEvent:
		e.sample(model.Sample{X: ev.X, Y: ev.Y, Timestamp: ev.TimestampMs})
	default:
		e.logger.Warn("ignoring unknown event", "event", ev)
	}
}

func (e *Engine) tick() {
	if e.body.Dragging {
		return
	}

	bounces := e.integrator.Step(&e.body, e.platform.Geometry())
	e.platform.SetPosition(e.body.PosX, e.body.PosY)

	if e.hooks.OnBounce != nil {
		for _, b := range bounces {
			e.hooks.OnBounce(b)
		}
	}
}

func (e *Engine) dragStart() {
	if !e.body.Dragging {
		e.logger.Debug("drag started", "x", e.body.PosX, "y", e.body.PosY)
	}
	e.estimator.DragStart(&e.body)
	if e.hooks.OnVelocityReset != nil {
		e.hooks.OnVelocityReset()
	}
}

func (e *Engine) sample(s model.Sample) {
	if !e.estimator.Sample(&e.body, s) {
		return
	}
	e.logger.Debug("sample", "x", s.X, "y", s.Y)
	if e.hooks.OnSample != nil {
		e.hooks.OnSample(s.X, s.Y)
	}
}

func (e *Engine) dragEnd(x, y int) {
	e.estimator.DragEnd(&e.body, x, y)
	e.logger.Debug("drag ended",
		"x", x, "y", y,
		"vel_x", e.body.VelX, "vel_y", e.body.VelY,
	)
}

// Body returns a copy of the current body state.
func (e *Engine) Body() BodyState {
	return e.body
}

// State returns the current simulation mode.
func (e *Engine) State() State {
	return e.body.State()
}

// History returns the retained drag samples, oldest first.
func (e *Engine) History() []model.Sample {
	return e.estimator.History()
}

// TickInterval returns the nominal interval drivers should tick at.
func (e *Engine) TickInterval() time.Duration {
	return e.integrator.Interval()
}

// Constants returns the physics parameters in use.
func (e *Engine) Constants() Constants {
	return e.integrator.Constants()
}

// Steps returns the number of free-state steps taken.
func (e *Engine) Steps() int64 {
	return e.integrator.Steps()
}
