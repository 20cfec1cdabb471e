package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)
	return screen
}

func rowScene(t *testing.T) (editor.Snapshot, *schem.Component) {
	t.Helper()
	e := editor.New(nil)
	x, _ := e.Place("Resistor", "", grid.Pt(0, 0))
	y, _ := e.Place("Resistor", "", grid.Pt(100, 0))
	if _, err := e.Connect(x.Ref(schem.Right), y.Ref(schem.Left)); err != nil {
		t.Fatal(err)
	}
	e.SelectTerminal(y.Ref(schem.Right))
	return e.Snapshot(), x
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	ch, _, _, _ := s.GetContent(x, y)
	return ch
}

func TestDrawRow(t *testing.T) {
	screen := newScreen(t)
	snap, _ := rowScene(t)

	r := New(screen)
	r.Fit(snap)
	if r.Origin() != (grid.Cell{I: -3, J: -2}) {
		t.Fatalf("origin = %v", r.Origin())
	}
	r.Draw(snap)

	// World cell (i, 0) is screen column i+3 on row 2.
	for i := 3; i <= 7; i++ {
		if got := runeAt(screen, i+3, 2); got != '─' {
			t.Errorf("wire cell %d = %q, want '─'", i, got)
		}
	}
	if got := runeAt(screen, 2+3, 2); got != 'o' {
		t.Errorf("X right terminal = %q, want 'o'", got)
	}
	if got := runeAt(screen, 12+3, 2); got != '@' {
		t.Errorf("armed terminal = %q, want '@'", got)
	}
	if got := runeAt(screen, -1+3, 2); got != 'R' {
		t.Errorf("label start = %q, want 'R'", got)
	}
	if got := runeAt(screen, 1+3, 2); got != '█' {
		t.Errorf("body cell = %q, want '█'", got)
	}
}

func TestDrawCorners(t *testing.T) {
	screen := newScreen(t)
	r := New(screen)
	w := schem.Wire{
		Points:  []grid.Point{grid.Pt(10, 10), grid.Pt(50, 10), grid.Pt(50, 40)},
		Outcome: schem.Routed,
	}
	r.Draw(editor.Snapshot{Wires: []schem.Wire{w}})

	if got := runeAt(screen, 1, 1); got != '─' {
		t.Errorf("start = %q", got)
	}
	if got := runeAt(screen, 5, 1); got != '┐' {
		t.Errorf("corner = %q, want '┐'", got)
	}
	if got := runeAt(screen, 5, 3); got != '│' {
		t.Errorf("vertical = %q, want '│'", got)
	}
}

func TestPanAndStatus(t *testing.T) {
	screen := newScreen(t)
	r := New(screen)
	r.Pan(4, -2)
	if r.Origin() != (grid.Cell{I: 4, J: -2}) {
		t.Errorf("origin = %v", r.Origin())
	}
	r.Status("hi")
	if got := runeAt(screen, 0, 9); got != 'h' {
		t.Errorf("status = %q", got)
	}
}
