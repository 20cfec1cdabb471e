package grid

import "math"

// Extent describes the placement canvas: a Columns x Rows lattice with Step
// world units between positions. Components dropped on the canvas snap to the
// lattice and are clamped to its edges.
type Extent struct {
	Columns int
	Rows    int
	Step    float64
}

// DefaultExtent is the 20x20 placement canvas with a 20-unit snap step.
var DefaultExtent = Extent{Columns: 20, Rows: 20, Step: 2 * CellSize}

// Unbounded snaps to the routing grid without clamping.
var Unbounded = Extent{Step: CellSize}

// Clamp snaps p to the lattice and clamps it into the canvas. A zero
// Columns or Rows leaves that axis unclamped.
func (e Extent) Clamp(p Point) Point {
	step := e.Step
	if step <= 0 {
		step = CellSize
	}
	x := math.Round(p.X/step) * step
	y := math.Round(p.Y/step) * step
	if e.Columns > 0 {
		x = math.Min(math.Max(x, 0), float64(e.Columns-1)*step)
	}
	if e.Rows > 0 {
		y = math.Min(math.Max(y, 0), float64(e.Rows-1)*step)
	}
	return Point{X: x, Y: y}
}

// Size returns the world-space width and height of the canvas, or zero for an
// unbounded axis.
func (e Extent) Size() (float64, float64) {
	var w, h float64
	if e.Columns > 0 {
		w = float64(e.Columns-1) * e.Step
	}
	if e.Rows > 0 {
		h = float64(e.Rows-1) * e.Step
	}
	return w, h
}
