package schem

import (
	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// Outcome records how a wire's waypoints were produced.
type Outcome int

const (
	Routed    Outcome = iota // Search reached the goal
	TimedOut                 // Budget expired, straight fallback
	Exhausted                // No path exists, straight fallback
)

func (o Outcome) String() string {
	switch o {
	case Routed:
		return "routed"
	case TimedOut:
		return "timeout"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Fallback reports whether the waypoints are the direct two-point path.
func (o Outcome) Fallback() bool {
	return o != Routed
}

// Wire connects two terminals on different components. Points is derived
// state: a reroute produces a new Wire value rather than editing this one.
type Wire struct {
	ID     uuid.UUID
	Start  TerminalRef
	End    TerminalRef
	Points []grid.Point // Routed polyline, logical coordinates

	// Terminal positions the route was computed for
	From grid.Point
	To   grid.Point

	Outcome Outcome
	Stale   bool // Endpoints moved since Points was computed
}

// NewWire returns a wire between two terminals with no route yet.
func NewWire(start, end TerminalRef) Wire {
	return Wire{ID: uuid.New(), Start: start, End: end}
}

// Touches reports whether either endpoint belongs to component id.
func (w Wire) Touches(id uuid.UUID) bool {
	return w.Start.ComponentID == id || w.End.ComponentID == id
}

// WithRoute returns a copy of w carrying a freshly computed route.
func (w Wire) WithRoute(from, to grid.Point, points []grid.Point, outcome Outcome) Wire {
	w.From = from
	w.To = to
	w.Points = append([]grid.Point(nil), points...)
	w.Outcome = outcome
	w.Stale = false
	return w
}

// MarkStale returns a copy of w flagged as out of date.
func (w Wire) MarkStale() Wire {
	w.Stale = true
	return w
}

// Length is the polyline length in world units.
func (w Wire) Length() float64 {
	return grid.PathLength(w.Points)
}
