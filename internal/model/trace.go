package model

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Frame is the body state after one simulation step.
type Frame struct {
	Tick     int64   `json:"tick" yaml:"tick"`
	X        int     `json:"x" yaml:"x"`
	Y        int     `json:"y" yaml:"y"`
	VelX     float64 `json:"vel_x" yaml:"vel_x"`
	VelY     float64 `json:"vel_y" yaml:"vel_y"`
	Dragging bool    `json:"dragging,omitempty" yaml:"dragging,omitempty"`
}

// Trace is the recorded outcome of a headless simulation run.
type Trace struct {
	RunID        string    `json:"run_id" yaml:"run_id"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	TickInterval string    `json:"tick_interval" yaml:"tick_interval"`

	Gravity      float64 `json:"gravity" yaml:"gravity"`
	Friction     float64 `json:"friction" yaml:"friction"`
	BounceFactor float64 `json:"bounce_factor" yaml:"bounce_factor"`

	Geometry Geometry `json:"geometry" yaml:"geometry"`
	Release  Point    `json:"release" yaml:"release"`
	// Release velocity estimated from the gesture, in pixels per second.
	ReleaseVelX float64 `json:"release_vel_x" yaml:"release_vel_x"`
	ReleaseVelY float64 `json:"release_vel_y" yaml:"release_vel_y"`

	Frames  []Frame  `json:"frames,omitempty" yaml:"frames,omitempty"`
	Bounces []Bounce `json:"bounces,omitempty" yaml:"bounces,omitempty"`

	// SettledAt is the tick at which the body came to rest, 0 if it never did.
	SettledAt int64 `json:"settled_at" yaml:"settled_at"`
	Ticks     int64 `json:"ticks" yaml:"ticks"`
	Final     Point `json:"final" yaml:"final"`
}

// NewRunID generates a sortable identifier for a simulation run.
func NewRunID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}
