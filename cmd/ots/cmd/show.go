package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/render/term"
)

var showCmd = &cobra.Command{
	Use:   "show <script>",
	Short: "Show a session in the terminal",
	Long: `Run a session script and draw the result in the terminal.

Arrow keys pan, f fits the drawing to the screen, q or Esc quits.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0])
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer screen.Fini()

	return term.New(screen).Run(s.Editor.Snapshot())
}
