package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

const session = `# two resistors and a source
SET policy wires
place resistor at 0,0 as R1
place "Voltage Source" at 100,0
Place Capacitor at 40,80

connect R1.right V1.left
connect R1.l to C1.r; move C1 to 40,100
drag V1 to 120,0 140,20
pan 10,-20
zoom 1.5 at 400,300
reroute
`

func mustParse(t *testing.T, input string) *Script {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParseSession(t *testing.T) {
	s := mustParse(t, session)
	if len(s.Statements) != 11 {
		t.Fatalf("statements = %d, want 11", len(s.Statements))
	}

	place := s.Statements[2].Place
	if place == nil || place.Type.Text() != "Voltage Source" || place.At.X != 100 || place.Label != "" {
		t.Errorf("quoted place = %+v", place)
	}
	if s.Statements[1].Place.Label != "R1" {
		t.Errorf("label = %q", s.Statements[1].Place.Label)
	}

	conn := s.Statements[5].Connect
	if conn == nil || conn.From.Component != "R1" || conn.To.Side != "r" {
		t.Errorf("connect = %+v", conn)
	}
	if s.Statements[6].Move == nil || s.Statements[6].Move.To.Y != 100 {
		t.Errorf("';' separated move = %+v", s.Statements[6])
	}

	drag := s.Statements[7].Drag
	if drag == nil || len(drag.Path) != 2 || drag.Path[1].Y != 20 {
		t.Errorf("drag = %+v", drag)
	}
	if pan := s.Statements[8].Pan; pan == nil || pan.By.Y != -20 {
		t.Errorf("pan = %+v", pan)
	}
	if z := s.Statements[9].Zoom; z == nil || z.Factor != 1.5 || z.At == nil {
		t.Errorf("zoom = %+v", z)
	}
	if s.Statements[10].Reroute == nil {
		t.Error("reroute not parsed")
	}
	if s.Statements[2].Pos.Line != 4 {
		t.Errorf("position line = %d, want 4", s.Statements[2].Pos.Line)
	}
}

func TestParseErrors(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{
		"place resistor 0,0",
		"connect R1 C1.left",
		"teleport R1",
		"zoom",
	} {
		if _, err := p.ParseString(input); err == nil {
			t.Errorf("%q: expected parse error", input)
		}
	}
}

func TestRunSession(t *testing.T) {
	cfg := editor.DefaultConfig()
	cfg.Extent = grid.Unbounded
	ed := editor.New(cfg)
	cam := view.NewCamera(800, 600)

	if err := NewRunner(ed, cam, nil).Run(mustParse(t, session)); err != nil {
		t.Fatal(err)
	}

	if got := ed.Config().Policy; got != obstacle.Wires {
		t.Errorf("policy = %v, want wires", got)
	}
	if n := len(ed.Components()); n != 3 {
		t.Errorf("components = %d", n)
	}
	if n := len(ed.Wires()); n != 2 {
		t.Errorf("wires = %d", n)
	}
	v, _ := ed.ComponentByLabel("V1")
	if v.Anchor != grid.Pt(140, 20) {
		t.Errorf("V1 anchor = %v", v.Anchor)
	}
	c, _ := ed.ComponentByLabel("c1")
	if c.Anchor != grid.Pt(40, 100) {
		t.Errorf("C1 anchor = %v", c.Anchor)
	}
	for _, w := range ed.Wires() {
		if w.Stale {
			t.Errorf("wire %s stale", w.ID)
		}
	}
	if cam.CenterX == 0 && cam.CenterY == 0 {
		t.Error("pan did not reach the camera")
	}
}

func TestRunReportsLine(t *testing.T) {
	ed := editor.New(nil)
	err := RunString(ed, "place resistor at 0,0\nconnect R1.left R1.right\n")
	if !errors.Is(err, editor.ErrSameComponent) {
		t.Fatalf("err = %v, want ErrSameComponent", err)
	}
	if got := err.Error(); !strings.HasPrefix(got, "line 2:") {
		t.Errorf("error %q should carry the line", got)
	}

	err = RunString(ed, "move Q7 to 0,0")
	if !errors.Is(err, editor.ErrUnknownComponent) {
		t.Errorf("err = %v, want ErrUnknownComponent", err)
	}
}

func TestRunSelect(t *testing.T) {
	ed := editor.New(nil)
	input := "place diode at 0,0\nplace diode at 100,0\nselect D1.right\nselect D2.left\n"
	if err := RunString(ed, input); err != nil {
		t.Fatal(err)
	}
	wires := ed.Wires()
	if len(wires) != 1 || wires[0].Start.Side != schem.Right || wires[0].End.Side != schem.Left {
		t.Errorf("wires = %+v", wires)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.ots")
	if err := os.WriteFile(path, []byte("place switch at 20,20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ed := editor.New(nil)
	if err := RunFile(ed, nil, nil, path); err != nil {
		t.Fatal(err)
	}
	if _, ok := ed.ComponentByLabel("SW1"); !ok {
		t.Error("SW1 not placed")
	}
	if err := RunFile(ed, nil, nil, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
