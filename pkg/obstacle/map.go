package obstacle

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// Map is a sparse set of blocked cells scoped to a search region.
type Map struct {
	Bounds  grid.Rect
	blocked map[grid.Cell]struct{}
}

// NewMap returns an empty map over bounds.
func NewMap(bounds grid.Rect) *Map {
	return &Map{Bounds: bounds, blocked: make(map[grid.Cell]struct{})}
}

// Block marks c as blocked. Cells outside Bounds are ignored.
func (m *Map) Block(c grid.Cell) {
	if m.Bounds.Contains(c) {
		m.blocked[c] = struct{}{}
	}
}

// Unblock clears c.
func (m *Map) Unblock(c grid.Cell) {
	delete(m.blocked, c)
}

// Blocked reports whether c is an obstacle cell.
func (m *Map) Blocked(c grid.Cell) bool {
	_, ok := m.blocked[c]
	return ok
}

// Passable reports whether a path may enter c.
func (m *Map) Passable(c grid.Cell) bool {
	return m.Bounds.Contains(c) && !m.Blocked(c)
}

// Len is the number of blocked cells.
func (m *Map) Len() int {
	return len(m.blocked)
}

// Cells returns the blocked cells ordered by row, then column.
func (m *Map) Cells() []grid.Cell {
	cells := make([]grid.Cell, 0, len(m.blocked))
	for c := range m.blocked {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].J != cells[j].J {
			return cells[i].J < cells[j].J
		}
		return cells[i].I < cells[j].I
	})
	return cells
}
