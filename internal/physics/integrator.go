package physics

import (
	"math"
	"time"

	"github.com/jmylchreest/bouncy/internal/model"
)

// Integrator advances a free body by one discrete step per tick.
//
// Every step applies the same gravity and friction increments regardless of
// how much wall time actually passed; the interval only tells drivers how
// often to tick.
type Integrator struct {
	constants Constants
	interval  time.Duration
	steps     int64
}

// NewIntegrator creates an integrator. A non-positive interval falls back
// to DefaultTickInterval.
func NewIntegrator(c Constants, interval time.Duration) *Integrator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Integrator{
		constants: c,
		interval:  interval,
	}
}

// Constants returns the physics parameters in use.
func (in *Integrator) Constants() Constants {
	return in.constants
}

// Interval returns the nominal tick interval.
func (in *Integrator) Interval() time.Duration {
	return in.interval
}

// Steps returns the number of steps taken so far.
func (in *Integrator) Steps() int64 {
	return in.steps
}

// Step advances body by one tick against geo and returns the collisions
// that occurred. A dragged body is left untouched.
func (in *Integrator) Step(body *BodyState, geo model.Geometry) []model.Bounce {
	if body.Dragging {
		return nil
	}
	in.steps++

	body.VelY += in.constants.Gravity

	body.VelY *= in.constants.Friction
	body.VelX *= in.constants.Friction
	if math.Abs(body.VelX) < VelocityDeadzone {
		body.VelX = 0
	}

	// truncation toward zero; the lost fraction is not carried over
	body.PosY += int(body.VelY)
	body.PosX += int(body.VelX)

	return in.Collide(body, geo)
}

// Collide clamps body into the work area, reflecting and damping the
// velocity on each axis that touched an edge. Y is resolved before X and
// the axes are independent.
func (in *Integrator) Collide(body *BodyState, geo model.Geometry) []model.Bounce {
	var bounces []model.Bounce

	switch {
	case body.PosY <= geo.WorkAreaTop:
		body.PosY = geo.WorkAreaTop
		bounces = append(bounces, in.reflect(&body.VelY, model.AxisY, model.EdgeTop))
	case body.PosY+geo.WindowHeight >= geo.WorkAreaBottom:
		body.PosY = geo.MaxY()
		bounces = append(bounces, in.reflect(&body.VelY, model.AxisY, model.EdgeBottom))
	}

	switch {
	case body.PosX <= geo.WorkAreaLeft:
		body.PosX = geo.WorkAreaLeft
		bounces = append(bounces, in.reflect(&body.VelX, model.AxisX, model.EdgeLeft))
	case body.PosX+geo.WindowWidth >= geo.WorkAreaRight:
		body.PosX = geo.MaxX()
		bounces = append(bounces, in.reflect(&body.VelX, model.AxisX, model.EdgeRight))
	}

	return bounces
}

func (in *Integrator) reflect(v *float64, axis model.Axis, edge model.Edge) model.Bounce {
	b := model.Bounce{
		Tick:  in.steps,
		Axis:  axis,
		Edge:  edge,
		Speed: math.Abs(*v),
	}
	*v = -*v * in.constants.BounceFactor
	return b
}
