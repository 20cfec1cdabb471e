// Package ui is the Gio editor window: a canvas showing the drawing, a
// toolbar with the component palette, and pointer and key bindings that
// drive an editor.Editor.
package ui

import (
	"log"
	"os"

	"gioui.org/app"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
)

// Run launches the editor window and blocks until it closes.
func Run(ed *editor.Editor, opts Options) error {
	if ed == nil {
		ed = editor.New(nil)
	}

	go func() {
		w := new(app.Window)
		ui := New(w, ed, opts)
		if err := ui.Run(); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
