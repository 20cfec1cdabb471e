// Package grid maps continuous world coordinates onto the integer routing grid.
//
// The cell size is shared by routing and rendering so that routed wires land on
// the grid lines the canvas draws.
package grid

import (
	"fmt"
	"math"
)

// CellSize is the world-space edge length of one routing cell.
const CellSize = 10.0

// Point is a position in world (logical canvas) coordinates.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Cell addresses one grid cell. I is the column, J the row.
type Cell struct {
	I int
	J int
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.I, c.J)
}

// ToCell quantizes a world point to the nearest cell.
func ToCell(p Point) Cell {
	return Cell{
		I: int(math.Round(p.X / CellSize)),
		J: int(math.Round(p.Y / CellSize)),
	}
}

// ToWorld returns the world position of a cell's grid intersection.
func ToWorld(c Cell) Point {
	return Point{X: float64(c.I) * CellSize, Y: float64(c.J) * CellSize}
}

// Snap moves p onto the nearest grid intersection.
func Snap(p Point) Point {
	return ToWorld(ToCell(p))
}

// Manhattan returns the 4-connected distance between two cells.
func Manhattan(a, b Cell) int {
	return abs(a.I-b.I) + abs(a.J-b.J)
}

// PathLength returns the summed segment length of a polyline.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}

// Line returns every cell on the straight line from a to b, both ends
// included. Axis-aligned lines yield the full row or column; anything else is
// stepped with integer Bresenham.
func Line(a, b Cell) []Cell {
	dx := abs(b.I - a.I)
	dy := -abs(b.J - a.J)
	sx, sy := sign(b.I-a.I), sign(b.J-a.J)

	cells := make([]Cell, 0, max(dx, -dy)+1)
	err := dx + dy
	cur := a
	for {
		cells = append(cells, cur)
		if cur == b {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			cur.I += sx
		}
		if e2 <= dx {
			err += dx
			cur.J += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
