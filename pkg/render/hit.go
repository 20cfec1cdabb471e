package render

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// TerminalAt returns the terminal nearest p within radius world units.
func TerminalAt(snap editor.Snapshot, p grid.Point, radius float64) (schem.TerminalRef, bool) {
	best := radius
	var ref schem.TerminalRef
	found := false
	for _, c := range snap.Components {
		for _, t := range []schem.Terminal{c.Left, c.Right} {
			d := math.Hypot(t.Position.X-p.X, t.Position.Y-p.Y)
			if d <= best {
				best = d
				ref = c.Ref(t.Side)
				found = true
			}
		}
	}
	return ref, found
}

// ComponentAt returns the topmost component whose body contains p.
func ComponentAt(snap editor.Snapshot, p grid.Point) (*schem.Component, bool) {
	for i := len(snap.Components) - 1; i >= 0; i-- {
		if c := snap.Components[i]; c.Bounds().ContainsPoint(p) {
			return c, true
		}
	}
	return nil, false
}

// Bounds returns the world rectangle covering every body and wire in snap,
// or false for an empty drawing.
func Bounds(snap editor.Snapshot) (grid.RectF, bool) {
	var b grid.RectF
	first := true
	add := func(p grid.Point) {
		if first {
			b = grid.RectF{Min: p, Max: p}
			first = false
			return
		}
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	for _, c := range snap.Components {
		r := c.Bounds()
		add(r.Min)
		add(r.Max)
	}
	for _, w := range snap.Wires {
		for _, p := range w.Points {
			add(p)
		}
	}
	return b, !first
}
