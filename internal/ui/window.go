package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/render"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/script"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/view"
)

// Options configure the editor window.
type Options struct {
	Title string
	Theme render.Theme
}

// App is the schematic editor window.
type App struct {
	window   *app.Window
	ops      op.Ops
	gvTheme  *theme.Theme
	explorer *explorer.Explorer

	ctrl       *Controller
	colorTheme render.Theme
	colors     *render.Colors

	// Toolbar
	paletteMenu *menu.DropdownMenu
	paletteBtn  widget.Clickable
	selectBtn   widget.Clickable
	rerouteBtn  widget.Clickable
	deleteBtn   widget.Clickable
	policyBtn   widget.Clickable
	openBtn     widget.Clickable

	selectIcon  *widget.Icon
	rerouteIcon *widget.Icon
	deleteIcon  *widget.Icon
	policyIcon  *widget.Icon
	paletteIcon *widget.Icon

	canvasTag bool
	scripts   chan *script.Script
}

// New creates the editor window around ed.
func New(w *app.Window, ed *editor.Editor, opts Options) *App {
	if w == nil {
		w = new(app.Window)
	}
	title := opts.Title
	if title == "" {
		title = "OpenTraceSchem"
	}
	w.Option(app.Title(title), app.Size(unit.Dp(1200), unit.Dp(800)))

	a := &App{
		window:     w,
		gvTheme:    theme.NewTheme("", nil, true),
		explorer:   explorer.NewExplorer(w),
		ctrl:       NewController(ed, view.NewCamera(1200, 800)),
		colorTheme: opts.Theme,
		scripts:    make(chan *script.Script, 4),
	}
	a.applyPalette()
	a.paletteMenu = a.buildPaletteMenu()

	a.selectIcon = mustIcon(icons.ActionBuild)
	a.rerouteIcon = mustIcon(icons.ActionAutorenew)
	a.deleteIcon = mustIcon(icons.ActionDelete)
	a.policyIcon = mustIcon(icons.ActionSettings)
	a.paletteIcon = mustIcon(icons.ActionList)

	a.ctrl.Fit()
	return a
}

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("icon: %v", err)
		return nil
	}
	return icon
}

// Controller returns the input controller.
func (a *App) Controller() *Controller {
	return a.ctrl
}

// Run processes window events until the window is closed.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.handleKeys(gtx)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) applyPalette() {
	a.colors = render.GetColors(a.colorTheme)
	if a.colorTheme == render.ThemeDark {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
	}
}

func (a *App) toggleTheme() {
	if a.colorTheme == render.ThemeLight {
		a.colorTheme = render.ThemeDark
	} else {
		a.colorTheme = render.ThemeLight
	}
	a.applyPalette()
	log.Printf("Theme switched to: %s", a.colorTheme)
}

func (a *App) buildPaletteMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(schem.Palette))
	for _, typ := range schem.Palette {
		name := typ
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.ctrl.PlaceType = name
				a.ctrl.Tool = ToolPlace
				log.Printf("Placing: %s", name)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, name)
				if name == a.ctrl.PlaceType && a.ctrl.Tool == ToolPlace {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

func (a *App) openScript() {
	go func() {
		file, err := a.explorer.ChooseFile("ots")
		if err != nil {
			if err != explorer.ErrUserDecline {
				log.Printf("File picker error: %v", err)
			}
			return
		}
		defer file.Close()

		p, err := script.NewParser()
		if err != nil {
			log.Printf("Script parser: %v", err)
			return
		}
		s, err := p.Parse(file)
		if err != nil {
			log.Printf("Error loading script: %v", err)
			return
		}
		// The editor is only touched from the event loop.
		a.scripts <- s
		a.window.Invalidate()
	}()
}

// runPending executes scripts chosen in the file picker.
func (a *App) runPending() {
	for {
		select {
		case s := <-a.scripts:
			if err := script.NewRunner(a.ctrl.Editor, a.ctrl.Camera, nil).Run(s); err != nil {
				log.Printf("Script error: %v", err)
			} else {
				log.Printf("Script ran: %d statements", len(s.Statements))
			}
			a.ctrl.Fit()
		default:
			return
		}
	}
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "O", Required: key.ModShortcut},
			key.Filter{Name: "R"},
			key.Filter{Name: "F"},
			key.Filter{Name: "P"},
			key.Filter{Name: "B"},
			key.Filter{Name: "D"},
			key.Filter{Name: "T"},
			key.Filter{Name: "1"},
			key.Filter{Name: "2"},
			key.Filter{Name: "Q"},
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: key.NameDeleteForward},
			key.Filter{Name: key.NameDeleteBackward},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}

		switch {
		case ke.Name == "O" && ke.Modifiers.Contain(key.ModShortcut):
			a.openScript()
		case ke.Name == "R":
			a.ctrl.RerouteAll()
		case ke.Name == "F":
			a.ctrl.Fit()
		case ke.Name == "P":
			a.ctrl.CyclePolicy()
		case ke.Name == "B":
			a.ctrl.ToggleBatch()
		case ke.Name == "D":
			a.ctrl.ToggleDrag()
		case ke.Name == "T":
			a.toggleTheme()
		case ke.Name == "1":
			a.ctrl.Tool = ToolSelect
		case ke.Name == "2":
			a.ctrl.Tool = ToolPlace
		case ke.Name == "Q":
			os.Exit(0)
		case ke.Name == key.NameEscape:
			a.ctrl.Cancel()
		case ke.Name == key.NameDeleteForward || ke.Name == key.NameDeleteBackward:
			a.ctrl.DeleteFocused()
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.runPending()

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.layoutCanvas),
		layout.Rigid(a.layoutStatusBar),
	)
}

func (a *App) iconButton(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, desc string) layout.Dimensions {
	if icon == nil {
		return material.Button(a.gvTheme.Theme, btn, desc).Layout(gtx)
	}
	b := material.IconButton(a.gvTheme.Theme, btn, icon, desc)
	b.Size = unit.Dp(20)
	b.Inset = layout.UniformInset(unit.Dp(6))
	return b.Layout(gtx)
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	if a.selectBtn.Clicked(gtx) {
		a.ctrl.Tool = ToolSelect
	}
	if a.rerouteBtn.Clicked(gtx) {
		a.ctrl.RerouteAll()
	}
	if a.deleteBtn.Clicked(gtx) {
		a.ctrl.DeleteFocused()
	}
	if a.policyBtn.Clicked(gtx) {
		a.ctrl.CyclePolicy()
	}
	if a.openBtn.Clicked(gtx) {
		a.openScript()
	}
	if a.paletteBtn.Clicked(gtx) {
		a.paletteMenu.ToggleVisibility(gtx)
	}

	spacer := layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout)
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims := a.iconButton(gtx, &a.paletteBtn, a.paletteIcon, "Palette")
				a.paletteMenu.Layout(gtx, a.gvTheme)
				return dims
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.selectBtn, a.selectIcon, "Select (1)")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.rerouteBtn, a.rerouteIcon, "Reroute all (R)")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.policyBtn, a.policyIcon, "Obstacle policy (P)")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.deleteBtn, a.deleteIcon, "Delete")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Button(a.gvTheme.Theme, &a.openBtn, "Open script (Ctrl+O)").Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				cfg := a.ctrl.Editor.Config()
				info := fmt.Sprintf("Tool: %s %s | Policy: %s | Batch: %s | Drag: %s",
					a.ctrl.Tool, a.placeHint(), cfg.Policy, cfg.Batch, cfg.Drag)
				return layout.E.Layout(gtx, material.Body2(a.gvTheme.Theme, info).Layout)
			}),
		)
	})
}

func (a *App) placeHint() string {
	if a.ctrl.Tool != ToolPlace {
		return ""
	}
	return "(" + a.ctrl.PlaceType + ")"
}

func (a *App) layoutCanvas(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	cam := a.ctrl.Camera
	cam.UpdateScreenSize(size.X, size.Y)

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &a.canvasTag,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				a.ctrl.Press(pe.Position)
			}
		case pointer.Drag:
			if pe.Buttons == pointer.ButtonPrimary {
				a.ctrl.Drag(pe.Position)
			}
		case pointer.Release, pointer.Cancel:
			a.ctrl.Release()
		case pointer.Scroll:
			a.ctrl.Scroll(pe.Position, pe.Scroll.Y)
		}
		gtx.Execute(op.InvalidateCmd{})
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	render.Render(gtx, cam, a.ctrl.Editor.Snapshot(), a.colors, render.DefaultOptions())
	event.Op(gtx.Ops, &a.canvasTag)
	area.Pop()

	return layout.Dimensions{Size: size}
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	snap := a.ctrl.Editor.Snapshot()
	info := fmt.Sprintf("Components: %d | Wires: %d | Zoom: %.1fx", len(snap.Components), len(snap.Wires), a.ctrl.Camera.Zoom)
	if msg := a.ctrl.Message(); msg != "" {
		info = msg + " | " + info
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			size := image.Pt(gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
			paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: size}.Op())
			return layout.Dimensions{Size: size}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Inset{Top: 4, Bottom: 4, Left: 8, Right: 8}.Layout(gtx,
				material.Caption(a.gvTheme.Theme, info+" | Click two terminals to wire, drag a body to move it, drag the canvas to pan").Layout)
		}),
	)
}
