package grid

import "math"

// Rect is an inclusive rectangle of cells.
type Rect struct {
	Min Cell
	Max Cell
}

// RectOf returns the smallest rectangle containing every given cell.
func RectOf(cells ...Cell) Rect {
	if len(cells) == 0 {
		return Rect{Min: Cell{0, 0}, Max: Cell{-1, -1}}
	}
	r := Rect{Min: cells[0], Max: cells[0]}
	for _, c := range cells[1:] {
		r = r.Include(c)
	}
	return r
}

// Empty reports whether r contains no cells.
func (r Rect) Empty() bool {
	return r.Max.I < r.Min.I || r.Max.J < r.Min.J
}

// Include grows r to contain c.
func (r Rect) Include(c Cell) Rect {
	if r.Empty() {
		return Rect{Min: c, Max: c}
	}
	r.Min.I = min(r.Min.I, c.I)
	r.Min.J = min(r.Min.J, c.J)
	r.Max.I = max(r.Max.I, c.I)
	r.Max.J = max(r.Max.J, c.J)
	return r
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if o.Empty() {
		return r
	}
	return r.Include(o.Min).Include(o.Max)
}

// Grow expands r by n cells on every side.
func (r Rect) Grow(n int) Rect {
	if r.Empty() {
		return r
	}
	return Rect{
		Min: Cell{I: r.Min.I - n, J: r.Min.J - n},
		Max: Cell{I: r.Max.I + n, J: r.Max.J + n},
	}
}

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Cell) bool {
	return c.I >= r.Min.I && c.I <= r.Max.I && c.J >= r.Min.J && c.J <= r.Max.J
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return r.Contains(o.Min) && r.Contains(o.Max)
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Min.I <= o.Max.I && r.Max.I >= o.Min.I &&
		r.Min.J <= o.Max.J && r.Max.J >= o.Min.J
}

// Width is the number of columns in r.
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Max.I - r.Min.I + 1
}

// Height is the number of rows in r.
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Max.J - r.Min.J + 1
}

// Area is the number of cells in r.
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// RectF is an axis-aligned rectangle in world coordinates.
type RectF struct {
	Min Point
	Max Point
}

// Around returns the rectangle center ± (halfW, halfH).
func Around(center Point, halfW, halfH float64) RectF {
	return RectF{
		Min: Point{X: center.X - halfW, Y: center.Y - halfH},
		Max: Point{X: center.X + halfW, Y: center.Y + halfH},
	}
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r RectF) ContainsPoint(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Cells returns the cell rectangle whose cell centres fall inside r.
// The result is empty when no grid intersection lies inside r.
func (r RectF) Cells() Rect {
	return Rect{
		Min: Cell{I: int(math.Ceil(r.Min.X / CellSize)), J: int(math.Ceil(r.Min.Y / CellSize))},
		Max: Cell{I: int(math.Floor(r.Max.X / CellSize)), J: int(math.Floor(r.Max.Y / CellSize))},
	}
}
