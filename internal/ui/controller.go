package ui

import (
	"fmt"
	"log"

	"gioui.org/f32"
	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

// Tool is what a primary press on empty canvas does.
type Tool int

const (
	ToolSelect Tool = iota // Pan the view
	ToolPlace              // Drop a component of the current palette type
)

func (t Tool) String() string {
	if t == ToolPlace {
		return "place"
	}
	return "select"
}

// TerminalRadius is the hit radius around a terminal, in screen pixels.
const TerminalRadius = 8.0

// Controller turns pointer and key input into editor operations. It holds no
// Gio state so it can be driven directly.
type Controller struct {
	Editor *editor.Editor
	Camera *view.Camera

	Tool      Tool
	PlaceType string
	Focused   uuid.UUID // Last component pressed, target of Delete

	panning bool
	last    f32.Point
	message string
}

// NewController returns a controller with the select tool and the first
// palette type armed for placement.
func NewController(ed *editor.Editor, cam *view.Camera) *Controller {
	return &Controller{Editor: ed, Camera: cam, PlaceType: schem.Palette[0]}
}

// Press handles a primary button press at a canvas position. Terminals take
// priority over bodies so a wire can start on a terminal that overlaps its
// own body.
func (c *Controller) Press(pos f32.Point) {
	world := c.Camera.ScreenToWorld(float64(pos.X), float64(pos.Y))
	snap := c.Editor.Snapshot()
	c.last = pos

	if ref, ok := render.TerminalAt(snap, world, TerminalRadius/c.Camera.Zoom); ok {
		sel := c.Editor.SelectTerminal(ref)
		switch sel.Action {
		case editor.Connected:
			c.notify("wire routed: %s", sel.Wire.Outcome)
		case editor.Rejected:
			c.notify("cannot connect: %v", sel.Err)
		default:
			c.notify("terminal %s", sel.Action)
		}
		return
	}

	if comp, ok := render.ComponentAt(snap, world); ok {
		c.Focused = comp.ID
		if err := c.Editor.BeginDrag(comp.ID); err != nil {
			c.notify("drag: %v", err)
		}
		return
	}

	c.Focused = uuid.Nil
	if c.Tool == ToolPlace {
		comp, err := c.Editor.Place(c.PlaceType, "", world)
		if err != nil {
			c.notify("place: %v", err)
			return
		}
		c.Focused = comp.ID
		c.notify("placed %s at %s", comp.Label, comp.Anchor)
		return
	}
	c.panning = true
}

// Drag handles pointer motion with the primary button held.
func (c *Controller) Drag(pos f32.Point) {
	if _, ok := c.Editor.Dragging(); ok {
		world := c.Camera.ScreenToWorld(float64(pos.X), float64(pos.Y))
		if err := c.Editor.DragTo(world); err != nil {
			c.notify("drag: %v", err)
		}
		return
	}
	if c.panning {
		c.Camera.Pan(float64(pos.X-c.last.X), float64(pos.Y-c.last.Y))
		c.last = pos
		c.Editor.ViewChanged()
	}
}

// Release ends a drag or pan.
func (c *Controller) Release() {
	c.panning = false
	if _, ok := c.Editor.Dragging(); ok {
		if err := c.Editor.EndDrag(); err != nil {
			c.notify("drag: %v", err)
		}
	}
}

// Scroll zooms around a canvas position, in for negative dy.
func (c *Controller) Scroll(pos f32.Point, dy float32) {
	if dy == 0 {
		return
	}
	factor := 1.1
	if dy > 0 {
		factor = 1 / 1.1
	}
	c.Camera.ZoomAt(float64(pos.X), float64(pos.Y), factor)
	c.Editor.ViewChanged()
}

// Cancel abandons a drag in progress or clears the armed terminal.
func (c *Controller) Cancel() {
	if _, ok := c.Editor.Dragging(); ok {
		if err := c.Editor.CancelDrag(); err != nil {
			c.notify("cancel: %v", err)
			return
		}
		c.notify("drag cancelled")
		return
	}
	c.Editor.ClearSelection()
}

// DeleteFocused removes the last pressed component.
func (c *Controller) DeleteFocused() {
	if c.Focused == uuid.Nil {
		return
	}
	if err := c.Editor.Remove(c.Focused); err != nil {
		c.notify("remove: %v", err)
	}
	c.Focused = uuid.Nil
}

// RerouteAll refreshes every wire.
func (c *Controller) RerouteAll() {
	rep := c.Editor.RerouteAll()
	c.notify("reroute: %d kept, %d rerouted, %d dropped", rep.Kept, rep.Rerouted, rep.Dropped)
}

// CyclePolicy steps through the obstacle policies.
func (c *Controller) CyclePolicy() {
	p := (c.Editor.Config().Policy + 1) % (obstacle.None + 1)
	c.Editor.SetPolicy(p)
	c.notify("policy: %s", p)
}

// ToggleBatch switches between frozen and sequential batches.
func (c *Controller) ToggleBatch() {
	b := editor.Frozen
	if c.Editor.Config().Batch == editor.Frozen {
		b = editor.Sequential
	}
	c.Editor.SetBatchMode(b)
	c.notify("batch: %s", b)
}

// ToggleDrag switches between live and deferred drags.
func (c *Controller) ToggleDrag() {
	d := editor.Live
	if c.Editor.Config().Drag == editor.Live {
		d = editor.Deferred
	}
	c.Editor.SetDragMode(d)
	c.notify("drag: %s", d)
}

// Fit frames the whole drawing.
func (c *Controller) Fit() {
	if b, ok := render.Bounds(c.Editor.Snapshot()); ok {
		c.Camera.Fit(b)
		c.Editor.ViewChanged()
	}
}

// Message returns the latest status message.
func (c *Controller) Message() string {
	return c.message
}

func (c *Controller) notify(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
	log.Printf("%s", c.message)
}
