// Package term draws an editor snapshot on a character terminal, one routing
// cell per character.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// Direction bits for box-drawing selection
const (
	west = 1 << iota
	east
	north
	south
)

var boxRunes = map[int]rune{
	west:                       '─',
	east:                       '─',
	west | east:                '─',
	north:                      '│',
	south:                      '│',
	north | south:              '│',
	east | south:               '┌',
	west | south:               '┐',
	east | north:               '└',
	west | north:               '┘',
	north | south | east:       '├',
	north | south | west:       '┤',
	west | east | south:        '┬',
	west | east | north:        '┴',
	west | east | north | south: '┼',
}

// Styles used for each element.
type Styles struct {
	Wire          tcell.Style
	FallbackWire  tcell.Style
	StaleWire     tcell.Style
	Body          tcell.Style
	Label         tcell.Style
	Terminal      tcell.Style
	TerminalArmed tcell.Style
	Status        tcell.Style
}

// DefaultStyles mirrors the light Gio palette on a dark terminal.
func DefaultStyles() Styles {
	return Styles{
		Wire:          tcell.StyleDefault.Foreground(tcell.ColorGreen),
		FallbackWire:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
		StaleWire:     tcell.StyleDefault.Foreground(tcell.ColorGray),
		Body:          tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		Label:         tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon),
		Terminal:      tcell.StyleDefault.Foreground(tcell.ColorRed),
		TerminalArmed: tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
		Status:        tcell.StyleDefault.Reverse(true),
	}
}

// Renderer paints snapshots onto a tcell screen. The screen column/row of a
// cell is its grid index minus the origin.
type Renderer struct {
	screen tcell.Screen
	styles Styles
	origin grid.Cell
}

// New returns a renderer drawing onto s.
func New(s tcell.Screen) *Renderer {
	return &Renderer{screen: s, styles: DefaultStyles()}
}

// SetStyles replaces the element styles.
func (r *Renderer) SetStyles(st Styles) {
	r.styles = st
}

// Origin returns the cell drawn at the top-left corner.
func (r *Renderer) Origin() grid.Cell {
	return r.origin
}

// Pan shifts the view by (di, dj) cells.
func (r *Renderer) Pan(di, dj int) {
	r.origin.I += di
	r.origin.J += dj
}

// Fit places the top-left corner one cell above and left of the drawing.
func (r *Renderer) Fit(snap editor.Snapshot) {
	var cells []grid.Cell
	for _, c := range snap.Components {
		b := c.Bounds()
		cells = append(cells, grid.ToCell(b.Min), grid.ToCell(b.Max))
	}
	for _, w := range snap.Wires {
		for _, p := range w.Points {
			cells = append(cells, grid.ToCell(p))
		}
	}
	b := grid.RectOf(cells...)
	if b.Empty() {
		r.origin = grid.Cell{}
		return
	}
	r.origin = grid.Cell{I: b.Min.I - 1, J: b.Min.J - 1}
}

// Draw clears the screen and paints snap: wires, then bodies and labels,
// then terminals. It does not call Show.
func (r *Renderer) Draw(snap editor.Snapshot) {
	r.screen.Clear()
	for _, w := range snap.Wires {
		r.drawWire(w)
	}
	for _, c := range snap.Components {
		r.drawBody(c)
	}
	for _, c := range snap.Components {
		r.drawTerminals(c, snap.Selected)
	}
}

// Status writes msg on the bottom row.
func (r *Renderer) Status(msg string) {
	w, h := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, r.styles.Status)
	}
	r.text(0, h-1, msg, r.styles.Status)
}

func (r *Renderer) put(c grid.Cell, ch rune, st tcell.Style) {
	x, y := c.I-r.origin.I, c.J-r.origin.J
	w, h := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, st)
}

func (r *Renderer) text(x, y int, s string, st tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, st)
		x++
	}
}

func (r *Renderer) drawWire(w schem.Wire) {
	st := r.styles.Wire
	switch {
	case w.Stale:
		st = r.styles.StaleWire
	case w.Outcome.Fallback():
		st = r.styles.FallbackWire
	}

	cells := obstacle.RasterizePolyline(w.Points)
	mask := make(map[grid.Cell]int, len(cells))
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		switch {
		case b.I > a.I:
			mask[a] |= east
			mask[b] |= west
		case b.I < a.I:
			mask[a] |= west
			mask[b] |= east
		case b.J > a.J:
			mask[a] |= south
			mask[b] |= north
		case b.J < a.J:
			mask[a] |= north
			mask[b] |= south
		}
	}
	for c, m := range mask {
		ch, ok := boxRunes[m]
		if !ok {
			ch = '+'
		}
		r.put(c, ch, st)
	}
}

func (r *Renderer) drawBody(c *schem.Component) {
	b := c.Bounds().Cells()
	for j := b.Min.J; j <= b.Max.J; j++ {
		for i := b.Min.I; i <= b.Max.I; i++ {
			r.put(grid.Cell{I: i, J: j}, '█', r.styles.Body)
		}
	}

	label := []rune(c.Name())
	row := grid.ToCell(c.Anchor).J
	start := grid.ToCell(c.Anchor).I - len(label)/2
	for k, ch := range label {
		r.put(grid.Cell{I: start + k, J: row}, ch, r.styles.Label)
	}
}

func (r *Renderer) drawTerminals(c *schem.Component, armed *schem.TerminalRef) {
	for _, t := range []schem.Terminal{c.Left, c.Right} {
		st, ch := r.styles.Terminal, 'o'
		if armed != nil && armed.ComponentID == c.ID && armed.Side == t.Side {
			st, ch = r.styles.TerminalArmed, '@'
		}
		r.put(grid.ToCell(t.Position), ch, st)
	}
}
