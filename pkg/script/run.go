package script

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

// Runner applies parsed statements to an editor.
type Runner struct {
	Editor *editor.Editor
	Camera *view.Camera
	log    *slog.Logger
}

// NewRunner returns a runner driving ed. Pan and zoom statements update cam,
// which may be nil.
func NewRunner(ed *editor.Editor, cam *view.Camera, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Editor: ed, Camera: cam, log: log}
}

// Run executes every statement in order and stops at the first failure.
// Errors carry the statement's line number.
func (r *Runner) Run(s *Script) error {
	for _, st := range s.Statements {
		if err := r.Exec(st); err != nil {
			return fmt.Errorf("line %d: %w", st.Pos.Line, err)
		}
	}
	return nil
}

// Exec executes one statement.
func (r *Runner) Exec(st *Statement) error {
	switch {
	case st.Place != nil:
		return r.place(st.Place)
	case st.Connect != nil:
		return r.connect(st.Connect)
	case st.Select != nil:
		return r.selectTerminal(st.Select)
	case st.Move != nil:
		id, err := r.component(st.Move.Component)
		if err != nil {
			return err
		}
		return r.Editor.Move(id, st.Move.To.World())
	case st.Drag != nil:
		return r.drag(st.Drag)
	case st.Remove != nil:
		id, err := r.component(st.Remove.Component)
		if err != nil {
			return err
		}
		return r.Editor.Remove(id)
	case st.Reroute != nil:
		rep := r.Editor.RerouteAll()
		r.log.Info("rerouted", slog.Int("kept", rep.Kept), slog.Int("rerouted", rep.Rerouted), slog.Int("dropped", rep.Dropped))
		return nil
	case st.Set != nil:
		return r.set(st.Set)
	case st.Pan != nil:
		if r.Camera != nil {
			r.Camera.Pan(st.Pan.By.X, st.Pan.By.Y)
		}
		r.Editor.ViewChanged()
		return nil
	case st.Zoom != nil:
		if r.Camera != nil {
			x, y := float64(r.Camera.ScreenWidth)/2, float64(r.Camera.ScreenHeight)/2
			if st.Zoom.At != nil {
				x, y = st.Zoom.At.X, st.Zoom.At.Y
			}
			r.Camera.ZoomAt(x, y, st.Zoom.Factor)
		}
		r.Editor.ViewChanged()
		return nil
	}
	return fmt.Errorf("empty statement")
}

// World converts the point to world coordinates.
func (p *Point) World() grid.Point {
	return grid.Pt(p.X, p.Y)
}

func (r *Runner) place(p *Place) error {
	c, err := r.Editor.Place(p.Type.Text(), p.Label, p.At.World())
	if err != nil {
		return err
	}
	r.log.Debug("placed", slog.String("label", c.Label), slog.String("anchor", c.Anchor.String()))
	return nil
}

func (r *Runner) connect(c *Connect) error {
	a, err := r.terminal(c.From)
	if err != nil {
		return err
	}
	b, err := r.terminal(c.To)
	if err != nil {
		return err
	}
	_, err = r.Editor.Connect(a, b)
	return err
}

func (r *Runner) selectTerminal(s *Select) error {
	ref, err := r.terminal(s.Terminal)
	if err != nil {
		return err
	}
	sel := r.Editor.SelectTerminal(ref)
	r.log.Debug("select", slog.String("terminal", s.Terminal.String()), slog.String("action", sel.Action.String()))
	return sel.Err
}

func (r *Runner) drag(d *Drag) error {
	id, err := r.component(d.Component)
	if err != nil {
		return err
	}
	if err := r.Editor.BeginDrag(id); err != nil {
		return err
	}
	for _, p := range d.Path {
		if err := r.Editor.DragTo(p.World()); err != nil {
			return err
		}
	}
	return r.Editor.EndDrag()
}

func (r *Runner) set(s *Set) error {
	switch strings.ToLower(s.Key) {
	case "policy":
		p, err := obstacle.ParsePolicy(s.Value)
		if err != nil {
			return err
		}
		r.Editor.SetPolicy(p)
	case "batch":
		b, err := editor.ParseBatchMode(s.Value)
		if err != nil {
			return err
		}
		r.Editor.SetBatchMode(b)
	case "drag":
		d, err := editor.ParseDragMode(s.Value)
		if err != nil {
			return err
		}
		r.Editor.SetDragMode(d)
	}
	return nil
}

func (r *Runner) component(label string) (uuid.UUID, error) {
	c, ok := r.Editor.ComponentByLabel(label)
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: %w", label, editor.ErrUnknownComponent)
	}
	return c.ID, nil
}

func (r *Runner) terminal(t *TermRef) (schem.TerminalRef, error) {
	id, err := r.component(t.Component)
	if err != nil {
		return schem.TerminalRef{}, err
	}
	side, err := schem.ParseSide(t.Side)
	if err != nil {
		return schem.TerminalRef{}, err
	}
	return schem.TerminalRef{ComponentID: id, Side: side}, nil
}

func (t *TermRef) String() string {
	return t.Component + "." + t.Side
}

// RunString parses and runs input against ed.
func RunString(ed *editor.Editor, input string) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	s, err := p.ParseString(input)
	if err != nil {
		return err
	}
	return NewRunner(ed, nil, nil).Run(s)
}

// RunFile parses and runs the script at path against ed.
func RunFile(ed *editor.Editor, cam *view.Camera, log *slog.Logger, path string) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	s, err := p.ParseFile(path)
	if err != nil {
		return err
	}
	return NewRunner(ed, cam, log).Run(s)
}
