package tui

import (
	"github.com/jmylchreest/bouncy/internal/model"
)

// minWindowCells is the smallest box that still fits a border and one line.
const minWindowCells = 3

// desktop maps the terminal onto a virtual pixel screen and implements
// physics.Platform. Each cell is cellW x cellH virtual pixels; the rows
// below the work area are reserved for the status bar.
type desktop struct {
	cols, rows   int
	reservedRows int
	cellW, cellH int
	winCols      int
	winRows      int
	pos          model.Point
}

func newDesktop(cellW, cellH, winWidth, winHeight int) *desktop {
	d := &desktop{cellW: cellW, cellH: cellH}
	d.resizeWindow(winWidth, winHeight)
	return d
}

// resizeWindow sets the window size in pixels, snapped down to whole cells.
func (d *desktop) resizeWindow(width, height int) {
	d.winCols = max(minWindowCells, width/d.cellW)
	d.winRows = max(minWindowCells, height/d.cellH)
}

// resize records the terminal size.
func (d *desktop) resize(cols, rows int) {
	d.cols = cols
	d.rows = rows
}

// reserve sets how many bottom rows are taken by the status bar.
func (d *desktop) reserve(rows int) {
	d.reservedRows = rows
}

// workRows returns the number of terminal rows available to the window.
func (d *desktop) workRows() int {
	return max(0, d.rows-d.reservedRows)
}

// Geometry implements physics.Platform.
func (d *desktop) Geometry() model.Geometry {
	return model.Geometry{
		WindowWidth:    d.winCols * d.cellW,
		WindowHeight:   d.winRows * d.cellH,
		WorkAreaLeft:   0,
		WorkAreaTop:    0,
		WorkAreaRight:  d.cols * d.cellW,
		WorkAreaBottom: d.workRows() * d.cellH,
	}
}

// SetPosition implements physics.Platform.
func (d *desktop) SetPosition(x, y int) {
	d.pos = model.Point{X: x, Y: y}
}

// toPixels converts a terminal cell to virtual pixels (top-left corner).
func (d *desktop) toPixels(col, row int) model.Point {
	return model.Point{X: col * d.cellW, Y: row * d.cellH}
}

// windowCell returns the window's top-left cell, kept on screen for drawing.
func (d *desktop) windowCell() (col, row int) {
	col = floorDiv(d.pos.X, d.cellW)
	row = floorDiv(d.pos.Y, d.cellH)
	col = min(max(col, 0), max(0, d.cols-d.winCols))
	row = min(max(row, 0), max(0, d.workRows()-d.winRows))
	return col, row
}

// hit reports whether the cell lies on the drawn window.
func (d *desktop) hit(col, row int) bool {
	wc, wr := d.windowCell()
	return col >= wc && col < wc+d.winCols && row >= wr && row < wr+d.winRows
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
