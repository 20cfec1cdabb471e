package schem

import (
	"testing"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

func TestNewComponentDerivesTerminals(t *testing.T) {
	c := NewComponent("Resistor", "R1", grid.Pt(100, 40))

	if c.Left.Position != grid.Pt(80, 40) {
		t.Errorf("left terminal = %v, want (80,40)", c.Left.Position)
	}
	if c.Right.Position != grid.Pt(120, 40) {
		t.Errorf("right terminal = %v, want (120,40)", c.Right.Position)
	}
	if c.Left.ComponentID != c.ID || c.Right.ComponentID != c.ID {
		t.Error("terminals must reference their owner")
	}
	if c.Left.ID == c.Right.ID {
		t.Error("terminals need distinct identities")
	}
}

func TestMoveToKeepsTerminalsInStep(t *testing.T) {
	c := NewComponent("Diode", "D1", grid.Pt(0, 0))

	for _, anchor := range []grid.Point{grid.Pt(40, 0), grid.Pt(-20, 60), grid.Pt(0, 0)} {
		c.MoveTo(anchor)
		if c.Left.Position != anchor.Sub(grid.Pt(TerminalOffset, 0)) {
			t.Errorf("after MoveTo(%v) left = %v", anchor, c.Left.Position)
		}
		if c.Right.Position != anchor.Add(grid.Pt(TerminalOffset, 0)) {
			t.Errorf("after MoveTo(%v) right = %v", anchor, c.Right.Position)
		}
	}
}

func TestConnectionsAreASet(t *testing.T) {
	c := NewComponent("Switch", "SW1", grid.Pt(0, 0))
	other := uuid.New()

	c.Connect(other)
	c.Connect(other)
	c.Connect(other)

	if got := len(c.Connections()); got != 1 {
		t.Fatalf("got %d connections after repeated connect, want 1", got)
	}
	if !c.IsConnected(other) {
		t.Error("IsConnected should report the peer")
	}

	c.Disconnect(other)
	if c.IsConnected(other) || len(c.Connections()) != 0 {
		t.Error("Disconnect should remove the peer")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewComponent("Motor", "M1", grid.Pt(0, 0))
	peer := uuid.New()
	c.Connect(peer)

	cp := c.Clone()
	cp.MoveTo(grid.Pt(100, 100))
	cp.Disconnect(peer)

	if c.Anchor != grid.Pt(0, 0) || !c.IsConnected(peer) {
		t.Error("mutating the clone changed the original")
	}
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{"left": Left, "L": Left, "Right": Right, "r": Right} {
		got, err := ParseSide(in)
		if err != nil || got != want {
			t.Errorf("ParseSide(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSide("top"); err == nil {
		t.Error("expected error for unknown side")
	}
}

func TestWireWithRouteCopies(t *testing.T) {
	a := NewComponent("Resistor", "R1", grid.Pt(0, 0))
	b := NewComponent("Resistor", "R2", grid.Pt(100, 0))
	w := NewWire(a.Ref(Right), b.Ref(Left)).MarkStale()

	pts := []grid.Point{grid.Pt(20, 0), grid.Pt(80, 0)}
	routed := w.WithRoute(pts[0], pts[1], pts, Routed)
	pts[0] = grid.Pt(-1, -1)

	if routed.Points[0] != grid.Pt(20, 0) {
		t.Error("WithRoute must copy the waypoint slice")
	}
	if routed.Stale || !w.Stale {
		t.Error("WithRoute clears staleness on the copy only")
	}
	if routed.ID != w.ID || routed.Length() != 60 {
		t.Errorf("routed wire = %+v", routed)
	}
	if !routed.Touches(a.ID) || !routed.Touches(b.ID) || routed.Touches(uuid.New()) {
		t.Error("Touches mismatch")
	}
}

func TestLookupType(t *testing.T) {
	if got, ok := LookupType("op-amp"); !ok || got != "Op-Amp" {
		t.Errorf("LookupType(op-amp) = %q, %v", got, ok)
	}
	if _, ok := LookupType("Flux Capacitor"); ok {
		t.Error("unexpected palette match")
	}
	if len(Palette) != 10 {
		t.Errorf("palette has %d entries", len(Palette))
	}
}
