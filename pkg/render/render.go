// Package render draws an editor snapshot with Gio. All drawing goes through
// a view.Camera; the snapshot itself stays in logical coordinates.
package render

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

// Global theme for text rendering
var defaultTheme = material.NewTheme()

func init() {
	defaultTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

// Options controls what is drawn.
type Options struct {
	ShowGrid      bool
	ShowWires     bool
	ShowBodies    bool
	ShowTerminals bool
	ShowLabels    bool
}

// DefaultOptions enables everything.
func DefaultOptions() Options {
	return Options{
		ShowGrid:      true,
		ShowWires:     true,
		ShowBodies:    true,
		ShowTerminals: true,
		ShowLabels:    true,
	}
}

// Render draws snap back to front: grid, wires, bodies, terminals, labels.
func Render(gtx layout.Context, cam *view.Camera, snap editor.Snapshot, colors *Colors, opts Options) {
	paint.Fill(gtx.Ops, colors.Background)

	if opts.ShowGrid {
		RenderGrid(gtx, cam, colors)
	}
	if opts.ShowWires {
		RenderWires(gtx, cam, snap.Wires, colors)
	}
	if opts.ShowBodies {
		RenderBodies(gtx, cam, snap.Components, colors)
	}
	if opts.ShowTerminals {
		RenderTerminals(gtx, cam, snap.Components, snap.Selected, colors)
	}
	if opts.ShowLabels {
		RenderLabels(gtx, cam, snap.Components, colors)
	}
}

// RenderGrid draws a dot at every second routing cell. Dots are skipped when
// they would be closer than 6 pixels.
func RenderGrid(gtx layout.Context, cam *view.Camera, colors *Colors) {
	const step = 2 * grid.CellSize
	if step*cam.Zoom < 6 {
		return
	}
	b := cam.VisibleBounds()
	const r = 1
	for y := math.Floor(b.Min.Y/step) * step; y <= b.Max.Y; y += step {
		for x := math.Floor(b.Min.X/step) * step; x <= b.Max.X; x += step {
			sx, sy := cam.WorldToScreen(grid.Pt(x, y))
			rect := clip.Rect{
				Min: image.Pt(int(sx)-r, int(sy)-r),
				Max: image.Pt(int(sx)+r, int(sy)+r),
			}
			paint.FillShape(gtx.Ops, colors.Grid, rect.Op())
		}
	}
}

// RenderWires strokes every wire polyline. Fallback and stale wires use their
// own colours.
func RenderWires(gtx layout.Context, cam *view.Camera, wires []schem.Wire, colors *Colors) {
	const wireWidth = 2.0

	for _, w := range wires {
		if len(w.Points) < 2 {
			continue
		}

		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(cam.ScreenPoint(w.Points[0]))
		for _, p := range w.Points[1:] {
			path.LineTo(cam.ScreenPoint(p))
		}

		col := colors.Wire
		switch {
		case w.Stale:
			col = colors.StaleWire
		case w.Outcome.Fallback():
			col = colors.FallbackWire
		}
		paint.FillShape(gtx.Ops, col, clip.Stroke{
			Path:  path.End(),
			Width: wireWidth,
		}.Op())
	}
}

// RenderBodies draws each component footprint as a filled, outlined box.
func RenderBodies(gtx layout.Context, cam *view.Camera, comps []*schem.Component, colors *Colors) {
	for _, c := range comps {
		b := c.Bounds()
		x1, y1 := cam.WorldToScreen(b.Min)
		x2, y2 := cam.WorldToScreen(b.Max)

		paint.FillShape(gtx.Ops, colors.BodyFill, rectPath(gtx.Ops, x1, y1, x2, y2).Op())

		strokeWidth := math.Max(0.75*cam.Zoom, 1.5)
		paint.FillShape(gtx.Ops, colors.Body, clip.Stroke{
			Path:  boxPath(gtx.Ops, x1, y1, x2, y2),
			Width: float32(strokeWidth),
		}.Op())
	}
}

// RenderTerminals draws a dot on every terminal, highlighting the armed one.
func RenderTerminals(gtx layout.Context, cam *view.Camera, comps []*schem.Component, armed *schem.TerminalRef, colors *Colors) {
	radius := math.Max(3*cam.Zoom, 3)
	for _, c := range comps {
		for _, t := range []schem.Terminal{c.Left, c.Right} {
			col := colors.Terminal
			if armed != nil && armed.ComponentID == c.ID && armed.Side == t.Side {
				col = colors.TerminalArmed
			}
			x, y := cam.WorldToScreen(t.Position)
			paint.FillShape(gtx.Ops, col, clip.Ellipse{
				Min: image.Pt(int(x-radius), int(y-radius)),
				Max: image.Pt(int(x+radius), int(y+radius)),
			}.Op(gtx.Ops))
		}
	}
}

// RenderLabels writes each component's label above its body.
func RenderLabels(gtx layout.Context, cam *view.Camera, comps []*schem.Component, colors *Colors) {
	for _, c := range comps {
		b := c.Bounds()
		x, y := cam.WorldToScreen(grid.Pt(b.Min.X, b.Min.Y-grid.CellSize*1.5))

		stack := op.Offset(image.Pt(int(x), int(y))).Push(gtx.Ops)
		lbl := material.Label(defaultTheme, unit.Sp(12), c.Name())
		lbl.Color = colors.Label
		lbl.Alignment = text.Start
		lbl.Layout(gtx)
		stack.Pop()
	}
}

func boxPath(ops *op.Ops, x1, y1, x2, y2 float64) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(f32.Pt(float32(x1), float32(y1)))
	p.LineTo(f32.Pt(float32(x2), float32(y1)))
	p.LineTo(f32.Pt(float32(x2), float32(y2)))
	p.LineTo(f32.Pt(float32(x1), float32(y2)))
	p.Close()
	return p.End()
}

func rectPath(ops *op.Ops, x1, y1, x2, y2 float64) clip.Outline {
	return clip.Outline{Path: boxPath(ops, x1, y1, x2, y2)}
}
