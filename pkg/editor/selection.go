package editor

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// SelectAction is what a terminal click did.
type SelectAction int

const (
	Armed     SelectAction = iota // First terminal of a pair chosen
	Disarmed                      // Armed terminal clicked again
	Rejected                      // Click refused, selection unchanged
	Connected                     // Second terminal chosen, wire created
)

func (a SelectAction) String() string {
	switch a {
	case Armed:
		return "armed"
	case Disarmed:
		return "disarmed"
	case Rejected:
		return "rejected"
	case Connected:
		return "connected"
	}
	return fmt.Sprintf("SelectAction(%d)", int(a))
}

// Selection reports the result of a terminal click.
type Selection struct {
	Action  SelectAction
	Pending *schem.TerminalRef // Armed terminal after the click, nil if none
	Wire    schem.Wire         // Set when Action is Connected
	Err     error              // Set when Action is Rejected
}

// SelectTerminal handles a click on a terminal. The first click arms it;
// clicking it again disarms it. Clicking the other terminal of the same
// component is rejected with ErrSameComponent and the first terminal stays
// armed. Clicking a terminal on another component connects the pair and
// clears the selection.
func (e *Editor) SelectTerminal(ref schem.TerminalRef) Selection {
	if _, ok := e.components[ref.ComponentID]; !ok {
		return e.selection(Rejected, fmt.Errorf("select %s: %w", ref, ErrUnknownComponent))
	}

	switch {
	case e.pending == nil:
		r := ref
		e.pending = &r
		return e.selection(Armed, nil)

	case *e.pending == ref:
		e.pending = nil
		return e.selection(Disarmed, nil)

	case e.pending.ComponentID == ref.ComponentID:
		return e.selection(Rejected, fmt.Errorf("select %s: %w", ref, ErrSameComponent))
	}

	w, err := e.Connect(*e.pending, ref)
	if err != nil {
		return e.selection(Rejected, err)
	}
	e.pending = nil
	sel := e.selection(Connected, nil)
	sel.Wire = w
	return sel
}

// Selected returns the armed terminal, if any.
func (e *Editor) Selected() (schem.TerminalRef, bool) {
	if e.pending == nil {
		return schem.TerminalRef{}, false
	}
	return *e.pending, true
}

// ClearSelection disarms any armed terminal.
func (e *Editor) ClearSelection() {
	e.pending = nil
}

func (e *Editor) selection(a SelectAction, err error) Selection {
	s := Selection{Action: a, Err: err}
	if e.pending != nil {
		r := *e.pending
		s.Pending = &r
	}
	return s
}
