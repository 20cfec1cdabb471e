package router

import (
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// reconstruct walks parent links back from goal and returns the cells from
// start to goal. start == goal yields [start, start].
func reconstruct(parent map[grid.Cell]grid.Cell, start, goal grid.Cell) []grid.Cell {
	if start == goal {
		return []grid.Cell{start, goal}
	}
	cells := []grid.Cell{goal}
	for c := goal; c != start; {
		p, ok := parent[c]
		if !ok {
			return nil
		}
		cells = append(cells, p)
		c = p
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// toWorld maps cells to world points, optionally merging collinear runs.
func toWorld(cells []grid.Cell, simplify bool) []grid.Point {
	if simplify {
		cells = corners(cells)
	}
	pts := make([]grid.Point, len(cells))
	for i, c := range cells {
		pts[i] = grid.ToWorld(c)
	}
	return pts
}

// corners keeps the endpoints and every cell where the direction changes.
func corners(cells []grid.Cell) []grid.Cell {
	if len(cells) < 3 {
		return cells
	}
	out := []grid.Cell{cells[0]}
	for i := 1; i < len(cells)-1; i++ {
		prev, cur, next := cells[i-1], cells[i], cells[i+1]
		d1 := grid.Cell{I: cur.I - prev.I, J: cur.J - prev.J}
		d2 := grid.Cell{I: next.I - cur.I, J: next.J - cur.J}
		if d1 != d2 {
			out = append(out, cur)
		}
	}
	return append(out, cells[len(cells)-1])
}

// Orthogonal reports whether every segment of points is axis-aligned.
func Orthogonal(points []grid.Point) bool {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.X != b.X && a.Y != b.Y {
			return false
		}
	}
	return true
}
