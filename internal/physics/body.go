package physics

import (
	"math"

	"github.com/jmylchreest/bouncy/internal/model"
)

// State is the simulation mode of the body.
type State int

const (
	StateFree State = iota
	StateDragging
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// BodyState is the simulated window. Positions are integer pixels,
// velocities are pixels per step once released.
type BodyState struct {
	PosX     int
	PosY     int
	VelX     float64
	VelY     float64
	Dragging bool
}

// State returns the mode implied by the dragging flag.
func (b BodyState) State() State {
	if b.Dragging {
		return StateDragging
	}
	return StateFree
}

// Position returns the current window origin.
func (b BodyState) Position() model.Point {
	return model.Point{X: b.PosX, Y: b.PosY}
}

// Speed returns the magnitude of the velocity vector.
func (b BodyState) Speed() float64 {
	return math.Hypot(b.VelX, b.VelY)
}

// Resting reports whether the body lies on the bottom edge with no
// horizontal motion and too little vertical speed to move a whole pixel.
func (b BodyState) Resting(geo model.Geometry) bool {
	return !b.Dragging &&
		b.VelX == 0 &&
		math.Abs(b.VelY) < 1 &&
		b.PosY == geo.MaxY()
}
