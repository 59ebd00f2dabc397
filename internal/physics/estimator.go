package physics

import (
	"github.com/jmylchreest/bouncy/internal/model"
)

// Estimator turns the position samples of a drag into a release velocity.
type Estimator struct {
	limits  GestureLimits
	history *SampleHistory
}

// NewEstimator creates an estimator with the given limits.
func NewEstimator(limits GestureLimits) *Estimator {
	return &Estimator{
		limits:  limits,
		history: NewSampleHistory(limits.MaxHistory),
	}
}

// DragStart clears the sample history, stops the body and marks it dragged.
// Calling it again while already dragging has the same effect as calling it once.
func (e *Estimator) DragStart(body *BodyState) {
	e.history.Reset()
	body.VelX = 0
	body.VelY = 0
	body.Dragging = true
}

// Sample records a drag position and refreshes the body's velocity estimate.
// Samples closer than MinDistance to the previous accepted sample are
// dropped as jitter; the return value reports whether s was accepted.
func (e *Estimator) Sample(body *BodyState, s model.Sample) bool {
	if last, ok := e.history.Last(); ok {
		dx := s.X - last.X
		dy := s.Y - last.Y
		if dx*dx+dy*dy < e.limits.MinDistance*e.limits.MinDistance {
			return false
		}
	}

	e.history.Push(s)

	if e.history.Len() < 2 {
		return true
	}

	first, _ := e.history.First()
	last, _ := e.history.Last()

	deltaTime := float64(last.Timestamp-first.Timestamp) / 1000
	if floor := e.limits.MinDeltaTime.Seconds(); deltaTime < floor {
		deltaTime = floor
	}

	body.VelX = float64(last.X-first.X) / deltaTime
	body.VelY = float64(last.Y-first.Y) / deltaTime
	return true
}

// DragEnd releases the body at the window's dropped position. The velocity
// estimated during the drag carries into free fall.
func (e *Estimator) DragEnd(body *BodyState, x, y int) {
	body.Dragging = false
	body.PosX = x
	body.PosY = y
}

// History returns the retained samples, oldest first.
func (e *Estimator) History() []model.Sample {
	return e.history.Samples()
}

// Limits returns the estimator's limits.
func (e *Estimator) Limits() GestureLimits {
	return e.limits
}
