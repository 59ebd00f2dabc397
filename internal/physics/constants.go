package physics

import "time"

// Default tuning values.
const (
	DefaultGravity      = 0.8
	DefaultFriction     = 0.98
	DefaultBounceFactor = 0.5

	DefaultMaxHistory   = 10
	DefaultMinDistance  = 50
	DefaultMinDeltaTime = 50 * time.Millisecond

	// DefaultTickInterval is roughly 60 steps per second.
	DefaultTickInterval = 16 * time.Millisecond

	// Horizontal speeds below this snap to zero.
	VelocityDeadzone = 0.01
)

// Constants are the per-step physics parameters. They are set once at
// startup and never change for the lifetime of an Engine.
type Constants struct {
	Gravity      float64 // added to VelY every step
	Friction     float64 // multiplier applied to both velocity components every step
	BounceFactor float64 // fraction of velocity kept after hitting an edge
}

// DefaultConstants returns the standard physics parameters.
func DefaultConstants() Constants {
	return Constants{
		Gravity:      DefaultGravity,
		Friction:     DefaultFriction,
		BounceFactor: DefaultBounceFactor,
	}
}

// GestureLimits tune the drag velocity estimator.
type GestureLimits struct {
	MaxHistory   int           // samples kept, oldest evicted first
	MinDistance  int           // samples closer than this to the previous one are jitter
	MinDeltaTime time.Duration // floor for the time span between oldest and newest sample
}

// DefaultGestureLimits returns the standard estimator limits.
func DefaultGestureLimits() GestureLimits {
	return GestureLimits{
		MaxHistory:   DefaultMaxHistory,
		MinDistance:  DefaultMinDistance,
		MinDeltaTime: DefaultMinDeltaTime,
	}
}
