package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/OpenTraceSchem/internal/ui"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/render"
)

var uiTheme string

var uiCmd = &cobra.Command{
	Use:   "ui [script]",
	Short: "Launch the editor window",
	Long: `Open the schematic editor window. When a session script is given it is
run first and the window opens on the result.

Controls:
  click a terminal, then another    connect them
  drag a component                  move it, wires follow
  drag empty canvas                 pan
  scroll                            zoom
  1 / 2                             select / place tool
  R reroute all, P policy, B batch mode, D drag mode
  F fit, T theme, Esc cancel, Delete remove, Ctrl+O open script, Q quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)

	uiCmd.Flags().StringVar(&uiTheme, "theme", "", "colour theme (light, dark; default from config)")
}

func runUI(cmd *cobra.Command, args []string) error {
	app, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	th, err := app.RenderTheme()
	if err != nil {
		return err
	}
	if uiTheme != "" {
		if th, err = render.ParseTheme(uiTheme); err != nil {
			return fmt.Errorf("--theme: %w", err)
		}
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	s, err := newSession(cmd, path)
	if err != nil {
		return err
	}

	title := "OpenTraceSchem"
	if path != "" {
		title += " - " + path
	}
	return appui.Run(s.Editor, appui.Options{Title: title, Theme: th})
}
