package editor

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// BatchReport summarises one RerouteAll pass.
type BatchReport struct {
	Kept     int // Cached routes still valid and shortest
	Rerouted int
	Dropped  int // Wires whose component is gone
}

// endpoints returns the current terminal positions of w, or false when
// either component no longer exists.
func (e *Editor) endpoints(w schem.Wire) (grid.Point, grid.Point, bool) {
	a, ok := e.components[w.Start.ComponentID]
	if !ok {
		return grid.Point{}, grid.Point{}, false
	}
	b, ok := e.components[w.End.ComponentID]
	if !ok {
		return grid.Point{}, grid.Point{}, false
	}
	return a.Terminal(w.Start.Side).Position, b.Terminal(w.End.Side).Position, true
}

// footprints lists every component body in insertion order.
func (e *Editor) footprints() []grid.RectF {
	out := make([]grid.RectF, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.components[id].Bounds())
	}
	return out
}

// sourceFrom builds the obstacle source for wire self out of wires, skipping
// self and anything in skip.
func (e *Editor) sourceFrom(wires []schem.Wire, self uuid.UUID, skip map[uuid.UUID]bool) obstacle.Source {
	src := obstacle.Source{Footprints: e.footprints()}
	for _, w := range wires {
		if w.ID == self || skip[w.ID] || len(w.Points) == 0 {
			continue
		}
		src.Wires = append(src.Wires, w.Points)
	}
	return src
}

func (e *Editor) liveSource(self uuid.UUID, skip map[uuid.UUID]bool) obstacle.Source {
	return e.sourceFrom(e.wires, self, skip)
}

// route computes a fresh route for w. It returns false when w dangles.
func (e *Editor) route(w schem.Wire, src obstacle.Source) (schem.Wire, bool) {
	from, to, ok := e.endpoints(w)
	if !ok {
		return w, false
	}
	res := e.router.RouteSource(from, to, e.cfg.Policy, src)
	return w.WithRoute(from, to, res.Points, res.Outcome), true
}

// valid reports whether the cached route of w may still be used: it was found
// by search, its endpoints match the current terminals, and no cell along
// its whole length is blocked in src.
func (e *Editor) valid(w schem.Wire, src obstacle.Source) bool {
	if w.Stale || w.Outcome.Fallback() || len(w.Points) < 2 {
		return false
	}
	from, to, ok := e.endpoints(w)
	if !ok || w.From != from || w.To != to {
		return false
	}
	return len(obstacle.Collisions(e.cfg.Policy, src, obstacle.RasterizePolyline(w.Points))) == 0
}

// refresh routes w against src. The cached route is kept only when it is
// still valid and no longer than the fresh one, so a detour left behind by
// an obstacle that has since gone is straightened. The second result reports
// whether the cache was kept; the third is false when w dangles.
func (e *Editor) refresh(w schem.Wire, src obstacle.Source) (schem.Wire, bool, bool) {
	fresh, ok := e.route(w, src)
	if !ok {
		return w, false, false
	}
	if e.valid(w, src) && (fresh.Outcome.Fallback() || w.Length() <= fresh.Length()) {
		return w, true, true
	}
	return fresh, false, true
}

// Recompute refreshes one wire against the live drawing. The cached route is
// kept when still valid and as short as a fresh one. A wire whose component is gone is dropped and
// ErrUnknownComponent is returned.
func (e *Editor) Recompute(id uuid.UUID) (schem.Wire, error) {
	i := e.wireIndex(id)
	if i < 0 {
		return schem.Wire{}, ErrUnknownWire
	}
	w, kept, ok := e.refresh(e.wires[i], e.liveSource(id, nil))
	if !ok {
		e.dropWireAt(i)
		return schem.Wire{}, ErrUnknownComponent
	}
	e.wires[i] = w
	if kept {
		e.metrics.keptRoutes(1)
	} else {
		e.metrics.rerouted("recompute", 1)
	}
	return w, nil
}

// RerouteAll refreshes every wire. Under Frozen every wire sees the drawing
// as it was before the call; under Sequential wires are processed in
// creation order and later wires see the new routes of earlier ones.
func (e *Editor) RerouteAll() BatchReport {
	var rep BatchReport
	before := append([]schem.Wire(nil), e.wires...)
	next := make([]schem.Wire, 0, len(e.wires))

	for i, w := range before {
		var src obstacle.Source
		switch e.cfg.Batch {
		case Sequential:
			// Processed wires take their new routes, the rest keep theirs.
			live := append(append([]schem.Wire(nil), next...), before[i:]...)
			src = e.sourceFrom(live, w.ID, nil)
		default:
			src = e.sourceFrom(before, w.ID, nil)
		}

		nw, kept, ok := e.refresh(w, src)
		switch {
		case !ok:
			rep.Dropped++
			continue
		case kept:
			rep.Kept++
		default:
			rep.Rerouted++
		}
		next = append(next, nw)
	}
	e.wires = next

	e.metrics.keptRoutes(rep.Kept)
	e.metrics.rerouted("batch", rep.Rerouted)
	e.metrics.dropped(rep.Dropped)
	e.metrics.setCounts(len(e.components), len(e.wires))
	e.log.Debug("reroute all",
		slog.String("batch", e.cfg.Batch.String()),
		slog.Int("kept", rep.Kept),
		slog.Int("rerouted", rep.Rerouted),
		slog.Int("dropped", rep.Dropped))
	return rep
}

// rerouteTouching force-recomputes every wire attached to component id in
// creation order. A wire still waiting in the set is not an obstacle for the
// ones routed before it.
func (e *Editor) rerouteTouching(id uuid.UUID, trigger string) int {
	pending := make(map[uuid.UUID]bool)
	for _, w := range e.wires {
		if w.Touches(id) {
			pending[w.ID] = true
		}
	}
	n := 0
	for i := 0; i < len(e.wires); {
		w := e.wires[i]
		if !pending[w.ID] {
			i++
			continue
		}
		delete(pending, w.ID)
		nw, ok := e.route(w, e.liveSource(w.ID, pending))
		if !ok {
			e.dropWireAt(i)
			continue
		}
		e.wires[i] = nw
		n++
		i++
	}
	e.metrics.rerouted(trigger, n)
	return n
}

// markTouchingStale flags every wire attached to component id.
func (e *Editor) markTouchingStale(id uuid.UUID) {
	for i, w := range e.wires {
		if w.Touches(id) {
			e.wires[i] = w.MarkStale()
		}
	}
}

func (e *Editor) dropWireAt(i int) {
	e.wires = append(e.wires[:i], e.wires[i+1:]...)
	e.metrics.dropped(1)
	e.metrics.setCounts(len(e.components), len(e.wires))
}
