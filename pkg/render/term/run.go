package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
)

// Run shows snap until the user presses q, Esc or Ctrl-C. Arrow keys pan and
// f re-fits the view.
func (r *Renderer) Run(snap editor.Snapshot) error {
	r.Fit(snap)
	status := fmt.Sprintf(" %d components, %d wires | arrows: pan  f: fit  q: quit", len(snap.Components), len(snap.Wires))

	for {
		r.Draw(snap)
		r.Status(status)
		r.screen.Show()

		switch ev := r.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			if r.handleKey(ev, snap) {
				return nil
			}
		}
	}
}

// handleKey applies a key press and reports whether the viewer should close.
func (r *Renderer) handleKey(ev *tcell.EventKey, snap editor.Snapshot) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		r.Pan(-4, 0)
	case tcell.KeyRight:
		r.Pan(4, 0)
	case tcell.KeyUp:
		r.Pan(0, -2)
	case tcell.KeyDown:
		r.Pan(0, 2)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'f', 'F':
			r.Fit(snap)
		}
	}
	return false
}
