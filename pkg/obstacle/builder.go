package obstacle

import (
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// Region sizing defaults
const (
	DefaultMargin   = 4       // Free cells kept around the endpoints and absorbed obstacles
	DefaultMaxCells = 250_000 // Region growth stops past this many cells
)

// Source is the caller's snapshot of the drawing at request time.
type Source struct {
	Wires      [][]grid.Point // Waypoint lists of already-routed wires
	Footprints []grid.RectF   // Placed component bodies
}

// Options tune region sizing.
type Options struct {
	Margin   int
	MaxCells int
}

// DefaultOptions returns the standard region sizing.
func DefaultOptions() Options {
	return Options{Margin: DefaultMargin, MaxCells: DefaultMaxCells}
}

// item is one rasterized obstacle with its cell bounding box.
type item struct {
	cells []grid.Cell // nil for footprints, which are filled from rect
	rect  grid.Rect
	fill  bool
}

// Build rasterizes the obstacles policy selects from src into a map covering
// start, goal and every obstacle that reaches into that neighbourhood.
//
// The region begins as the start/goal rectangle grown by the margin. An
// obstacle with any cell inside the region pulls the region out to its own
// bounds plus the margin, so the search can walk around it; this repeats
// until no further obstacle is reached or MaxCells would be exceeded.
// Start and goal are never blocked.
func Build(policy Policy, src Source, start, goal grid.Cell, opts Options) *Map {
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.MaxCells <= 0 {
		opts.MaxCells = DefaultMaxCells
	}

	items := collect(policy, src)
	bounds := grid.RectOf(start, goal).Grow(opts.Margin)

	absorbed := make([]bool, len(items))
	for changed := true; changed; {
		changed = false
		for i, it := range items {
			if absorbed[i] || !it.reaches(bounds) {
				continue
			}
			absorbed[i] = true
			grown := bounds.Union(it.rect.Grow(opts.Margin))
			if grown.Area() > opts.MaxCells {
				continue
			}
			if grown != bounds {
				bounds = grown
				changed = true
			}
		}
	}

	m := NewMap(bounds)
	for _, it := range items {
		it.rasterize(m)
	}
	m.Unblock(start)
	m.Unblock(goal)
	return m
}

func collect(policy Policy, src Source) []item {
	var items []item

	if policy.UsesComponents() {
		for _, fp := range src.Footprints {
			r := fp.Cells()
			if r.Empty() {
				continue
			}
			items = append(items, item{rect: r, fill: true})
		}
	}

	if policy.UsesWires() {
		for _, pts := range src.Wires {
			if len(pts) == 0 {
				continue
			}
			cells := RasterizePolyline(pts)
			items = append(items, item{cells: cells, rect: grid.RectOf(cells...)})
		}
	}

	return items
}

// RasterizePolyline returns every cell a polyline passes through. Segment
// joints appear once.
func RasterizePolyline(points []grid.Point) []grid.Cell {
	if len(points) == 1 {
		return []grid.Cell{grid.ToCell(points[0])}
	}
	var cells []grid.Cell
	for i := 1; i < len(points); i++ {
		seg := grid.Line(grid.ToCell(points[i-1]), grid.ToCell(points[i]))
		if i > 1 {
			seg = seg[1:]
		}
		cells = append(cells, seg...)
	}
	return cells
}

// Collisions returns the cells of path that an obstacle policy selects from
// src would block, in path order. Unlike Build it is not limited to a region,
// so a path that strays far from its endpoints is checked along its whole
// length. The first and last cells are never reported.
func Collisions(policy Policy, src Source, path []grid.Cell) []grid.Cell {
	if len(path) < 3 {
		return nil
	}
	items := collect(policy, src)
	wireCells := make(map[grid.Cell]struct{})
	var bodies []grid.Rect
	for _, it := range items {
		if it.fill {
			bodies = append(bodies, it.rect)
			continue
		}
		for _, c := range it.cells {
			wireCells[c] = struct{}{}
		}
	}

	var hits []grid.Cell
	start, goal := path[0], path[len(path)-1]
	for _, c := range path[1 : len(path)-1] {
		if c == start || c == goal {
			continue
		}
		if _, ok := wireCells[c]; ok {
			hits = append(hits, c)
			continue
		}
		for _, r := range bodies {
			if r.Contains(c) {
				hits = append(hits, c)
				break
			}
		}
	}
	return hits
}

func (it item) reaches(bounds grid.Rect) bool {
	if !it.rect.Intersects(bounds) {
		return false
	}
	if it.fill {
		return true
	}
	for _, c := range it.cells {
		if bounds.Contains(c) {
			return true
		}
	}
	return false
}

func (it item) rasterize(m *Map) {
	if !it.fill {
		for _, c := range it.cells {
			m.Block(c)
		}
		return
	}
	if !it.rect.Intersects(m.Bounds) {
		return
	}
	lo := grid.Cell{I: max(it.rect.Min.I, m.Bounds.Min.I), J: max(it.rect.Min.J, m.Bounds.Min.J)}
	hi := grid.Cell{I: min(it.rect.Max.I, m.Bounds.Max.I), J: min(it.rect.Max.J, m.Bounds.Max.J)}
	for j := lo.J; j <= hi.J; j++ {
		for i := lo.I; i <= hi.I; i++ {
			m.Block(grid.Cell{I: i, J: j})
		}
	}
}
