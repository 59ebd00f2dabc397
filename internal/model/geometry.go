// Package model defines the core data structures for bouncy.
package model

// Point is a position in platform coordinates (pixels, Y grows downward).
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Geometry is the window size and work area reported by the platform.
// It is queried fresh on every simulation step since either can change
// between ticks.
type Geometry struct {
	WindowWidth    int `json:"window_width" yaml:"window_width"`
	WindowHeight   int `json:"window_height" yaml:"window_height"`
	WorkAreaLeft   int `json:"work_area_left" yaml:"work_area_left"`
	WorkAreaTop    int `json:"work_area_top" yaml:"work_area_top"`
	WorkAreaRight  int `json:"work_area_right" yaml:"work_area_right"`
	WorkAreaBottom int `json:"work_area_bottom" yaml:"work_area_bottom"`
}

// ScreenWidth returns the width of the work area.
func (g Geometry) ScreenWidth() int {
	return g.WorkAreaRight - g.WorkAreaLeft
}

// ScreenHeight returns the height of the work area.
func (g Geometry) ScreenHeight() int {
	return g.WorkAreaBottom - g.WorkAreaTop
}

// MaxX returns the largest X at which the window still fits inside the work area.
func (g Geometry) MaxX() int {
	return g.WorkAreaRight - g.WindowWidth
}

// MaxY returns the largest Y at which the window still fits inside the work area.
func (g Geometry) MaxY() int {
	return g.WorkAreaBottom - g.WindowHeight
}

// Contains reports whether p lies inside the window placed at origin.
func (g Geometry) Contains(origin, p Point) bool {
	return p.X >= origin.X && p.X < origin.X+g.WindowWidth &&
		p.Y >= origin.Y && p.Y < origin.Y+g.WindowHeight
}
