package model

// Sample is a window position observed during a drag.
// Timestamp is a monotonic clock reading in milliseconds.
type Sample struct {
	X         int   `json:"x" yaml:"x"`
	Y         int   `json:"y" yaml:"y"`
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

// Axis identifies the axis a collision happened on.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Edge identifies which side of the work area was hit.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Bounce records a single boundary collision.
// Speed is the magnitude of the velocity on that axis before reflection.
type Bounce struct {
	Tick  int64   `json:"tick" yaml:"tick"`
	Axis  Axis    `json:"axis" yaml:"axis"`
	Edge  Edge    `json:"edge" yaml:"edge"`
	Speed float64 `json:"speed" yaml:"speed"`
}
