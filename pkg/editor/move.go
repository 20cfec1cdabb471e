package editor

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

type dragState struct {
	id     uuid.UUID
	mode   DragMode
	origin grid.Point
	moved  bool
}

// Move places component id at anchor, snapped and clamped, and recomputes
// every wire attached to it. Other wires are left as they are.
func (e *Editor) Move(id uuid.UUID, anchor grid.Point) error {
	c, ok := e.components[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrUnknownComponent)
	}
	c.MoveTo(e.cfg.Extent.Clamp(anchor))
	n := e.rerouteTouching(id, "move")

	e.log.Debug("component moved",
		slog.String("label", c.Label),
		slog.String("anchor", c.Anchor.String()),
		slog.Int("rerouted", n))
	return nil
}

// BeginDrag starts dragging component id. A drag already in progress is
// ended first.
func (e *Editor) BeginDrag(id uuid.UUID) error {
	c, ok := e.components[id]
	if !ok {
		return fmt.Errorf("drag %s: %w", id, ErrUnknownComponent)
	}
	if e.drag != nil {
		if err := e.EndDrag(); err != nil {
			return err
		}
	}
	e.drag = &dragState{id: id, mode: e.cfg.Drag, origin: c.Anchor}
	return nil
}

// DragTo moves the dragged component. Under Live attached wires are rerouted
// immediately; under Deferred they are marked stale until EndDrag.
func (e *Editor) DragTo(anchor grid.Point) error {
	if e.drag == nil {
		return ErrNoDrag
	}
	e.drag.moved = true
	if e.drag.mode == Live {
		return e.Move(e.drag.id, anchor)
	}
	c := e.components[e.drag.id]
	c.MoveTo(e.cfg.Extent.Clamp(anchor))
	e.markTouchingStale(e.drag.id)
	return nil
}

// EndDrag finishes the drag. Under Deferred the attached wires are rerouted
// once for the final position, producing the same result as Live.
func (e *Editor) EndDrag() error {
	if e.drag == nil {
		return ErrNoDrag
	}
	d := e.drag
	e.drag = nil
	if d.mode == Deferred && d.moved {
		n := e.rerouteTouching(d.id, "drag")
		e.log.Debug("drag ended", slog.Int("rerouted", n))
	}
	return nil
}

// Dragging reports the component being dragged, if any.
func (e *Editor) Dragging() (uuid.UUID, bool) {
	if e.drag == nil {
		return uuid.Nil, false
	}
	return e.drag.id, true
}

// CancelDrag returns the dragged component to where the drag began and
// reroutes its wires.
func (e *Editor) CancelDrag() error {
	if e.drag == nil {
		return ErrNoDrag
	}
	d := e.drag
	e.drag = nil
	if !d.moved {
		return nil
	}
	return e.Move(d.id, d.origin)
}
