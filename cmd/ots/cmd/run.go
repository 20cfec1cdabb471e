package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

var (
	runJSON  bool
	runStats bool
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a session script and print the routed wires",
	Long: `Execute a session script against a fresh editor and print every wire
with its outcome and waypoints.

A script is one statement per line:
  place Resistor at 0,0 as R1
  place Capacitor at 100,0
  connect R1.right to C1.left
  drag C1 to 120,40 140,80
  set policy wires
  reroute

Examples:
  ots run session.ots
  ots run session.ots --json
  ots run session.ots --stats --batch sequential`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runJSON, "json", false, "output as JSON")
	runCmd.Flags().BoolVar(&runStats, "stats", false, "print router and editor metrics")
}

// wireInfo is the printable form of a wire.
type wireInfo struct {
	From    string       `json:"from"`
	To      string       `json:"to"`
	Outcome string       `json:"outcome"`
	Stale   bool         `json:"stale,omitempty"`
	Length  float64      `json:"length"`
	Points  []grid.Point `json:"points"`
}

func describeWires(snap editor.Snapshot) []wireInfo {
	name := func(ref schem.TerminalRef) string {
		if c, ok := snap.Component(ref.ComponentID); ok {
			return c.Label + "." + ref.Side.String()
		}
		return ref.String()
	}

	out := make([]wireInfo, 0, len(snap.Wires))
	for _, w := range snap.Wires {
		out = append(out, wireInfo{
			From:    name(w.Start),
			To:      name(w.End),
			Outcome: w.Outcome.String(),
			Stale:   w.Stale,
			Length:  w.Length(),
			Points:  w.Points,
		})
	}
	return out
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0])
	if err != nil {
		return err
	}
	snap := s.Editor.Snapshot()
	wires := describeWires(snap)

	out := cmd.OutOrStdout()
	if runJSON {
		data, err := json.MarshalIndent(wires, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintf(out, "Components: %d\n", len(snap.Components))
		fmt.Fprintf(out, "Wires: %d\n", len(wires))
		for _, w := range wires {
			pts := make([]string, len(w.Points))
			for i, p := range w.Points {
				pts[i] = p.String()
			}
			fmt.Fprintf(out, "  %s -> %s [%s] %s\n", w.From, w.To, w.Outcome, strings.Join(pts, " "))
		}
	}

	if runStats {
		return s.writeStats(cmd)
	}
	return nil
}
