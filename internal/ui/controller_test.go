package ui

import (
	"testing"

	"gioui.org/f32"
	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

// newTestController returns a controller whose camera maps world units 1:1
// onto an 800x600 canvas centred on (200, 200).
func newTestController(t *testing.T) *Controller {
	t.Helper()
	cam := view.NewCamera(800, 600)
	cam.Zoom = 1
	cam.CenterX, cam.CenterY = 200, 200
	return NewController(editor.New(nil), cam)
}

func screenOf(c *Controller, p grid.Point) f32.Point {
	return c.Camera.ScreenPoint(p)
}

func place(t *testing.T, c *Controller, typ string, at grid.Point) *schem.Component {
	t.Helper()
	comp, err := c.Editor.Place(typ, "", at)
	if err != nil {
		t.Fatal(err)
	}
	return comp
}

func TestPressTwoTerminalsConnects(t *testing.T) {
	c := newTestController(t)
	r := place(t, c, "Resistor", grid.Pt(100, 100))
	capacitor := place(t, c, "Capacitor", grid.Pt(300, 100))

	c.Press(screenOf(c, r.Right.Position))
	c.Release()
	if _, ok := c.Editor.Selected(); !ok {
		t.Fatal("first terminal not armed")
	}

	c.Press(screenOf(c, capacitor.Left.Position))
	c.Release()
	wires := c.Editor.Wires()
	if len(wires) != 1 {
		t.Fatalf("wires = %d, want 1", len(wires))
	}
	if wires[0].Outcome != schem.Routed {
		t.Errorf("outcome = %s", wires[0].Outcome)
	}
	if _, ok := c.Editor.Selected(); ok {
		t.Error("selection not cleared after connecting")
	}
}

func TestDragBodyMovesComponent(t *testing.T) {
	c := newTestController(t)
	r := place(t, c, "Resistor", grid.Pt(100, 100))

	c.Press(screenOf(c, r.Anchor))
	if c.Focused != r.ID {
		t.Fatal("pressed component not focused")
	}
	c.Drag(screenOf(c, grid.Pt(160, 140)))
	c.Release()

	if _, ok := c.Editor.Dragging(); ok {
		t.Error("drag still in progress after release")
	}
	got, _ := c.Editor.Component(r.ID)
	if got.Anchor != grid.Pt(160, 140) {
		t.Errorf("anchor = %s, want (160,140)", got.Anchor)
	}
}

func TestPressEmptyCanvasPans(t *testing.T) {
	c := newTestController(t)
	c.Press(f32.Pt(400, 300))
	c.Drag(f32.Pt(450, 300))
	c.Release()

	if c.Camera.CenterX != 150 {
		t.Errorf("center x = %v, want 150", c.Camera.CenterX)
	}
	if len(c.Editor.Components()) != 0 {
		t.Error("select tool placed a component")
	}
}

func TestPlaceTool(t *testing.T) {
	c := newTestController(t)
	c.Tool = ToolPlace
	c.PlaceType = "Diode"

	c.Press(screenOf(c, grid.Pt(41, 79)))
	c.Release()

	comps := c.Editor.Components()
	if len(comps) != 1 {
		t.Fatalf("components = %d, want 1", len(comps))
	}
	if comps[0].Label != "D1" || comps[0].Anchor != grid.Pt(40, 80) {
		t.Errorf("placed %s at %s", comps[0].Label, comps[0].Anchor)
	}
	if c.Focused != comps[0].ID {
		t.Error("placed component not focused")
	}
}

func TestDeleteFocused(t *testing.T) {
	c := newTestController(t)
	r := place(t, c, "Resistor", grid.Pt(100, 100))
	capacitor := place(t, c, "Capacitor", grid.Pt(300, 100))
	if _, err := c.Editor.Connect(r.Ref(schem.Right), capacitor.Ref(schem.Left)); err != nil {
		t.Fatal(err)
	}

	c.Press(screenOf(c, r.Anchor))
	c.Release()
	c.DeleteFocused()

	if len(c.Editor.Components()) != 1 || len(c.Editor.Wires()) != 0 {
		t.Errorf("after delete: %d components, %d wires", len(c.Editor.Components()), len(c.Editor.Wires()))
	}
	if c.Focused != uuid.Nil {
		t.Error("focus kept after delete")
	}
}

func TestModeToggles(t *testing.T) {
	c := newTestController(t)

	want := []obstacle.Policy{obstacle.Components, obstacle.Wires, obstacle.None, obstacle.Both}
	for _, p := range want {
		c.CyclePolicy()
		if got := c.Editor.Config().Policy; got != p {
			t.Errorf("policy = %s, want %s", got, p)
		}
	}

	c.ToggleBatch()
	if c.Editor.Config().Batch != editor.Sequential {
		t.Error("batch not toggled")
	}
	c.ToggleDrag()
	if c.Editor.Config().Drag != editor.Deferred {
		t.Error("drag mode not toggled")
	}
}

func TestCancelArmedTerminal(t *testing.T) {
	c := newTestController(t)
	r := place(t, c, "Resistor", grid.Pt(100, 100))

	c.Press(screenOf(c, r.Left.Position))
	c.Release()
	c.Cancel()
	if _, ok := c.Editor.Selected(); ok {
		t.Error("selection survived cancel")
	}
}

func TestScrollZooms(t *testing.T) {
	c := newTestController(t)
	c.Scroll(f32.Pt(400, 300), -1)
	if c.Camera.Zoom <= 1 {
		t.Errorf("zoom = %v, want > 1", c.Camera.Zoom)
	}
	c.Scroll(f32.Pt(400, 300), 0)
	c.Scroll(f32.Pt(400, 300), 1)
	if c.Camera.Zoom < 0.999 || c.Camera.Zoom > 1.001 {
		t.Errorf("zoom = %v, want 1", c.Camera.Zoom)
	}
}
