package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/netlist"
)

var (
	netsJSON  bool
	netsKiCad bool
)

var netsCmd = &cobra.Command{
	Use:   "nets <script>",
	Short: "Print the connectivity of a session",
	Long: `Run a session script and print its nets (terminals joined by wires) and
groups (components joined through wires).

Examples:
  ots nets session.ots
  ots nets session.ots --json
  ots nets session.ots --kicad > session.net`,
	Args: cobra.ExactArgs(1),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)

	netsCmd.Flags().BoolVar(&netsJSON, "json", false, "output as JSON")
	netsCmd.Flags().BoolVar(&netsKiCad, "kicad", false, "output as a KiCad netlist")
}

func runNets(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0])
	if err != nil {
		return err
	}
	nl := netlist.Build(s.Editor.Snapshot())

	out := cmd.OutOrStdout()
	switch {
	case netsJSON:
		data, err := nl.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case netsKiCad:
		fmt.Fprint(out, nl.ExportKiCad())
	default:
		fmt.Fprintf(out, "Nets: %d\n", nl.NetCount())
		for _, n := range nl.Nets {
			pins := make([]string, len(n.Pins))
			for i, p := range n.Pins {
				pins[i] = p.String()
			}
			fmt.Fprintf(out, "  net %d: %s\n", n.ID, strings.Join(pins, ", "))
		}
		fmt.Fprintf(out, "Groups: %d\n", len(nl.Groups))
		for _, g := range nl.Groups {
			fmt.Fprintf(out, "  group %d: %s\n", g.ID, strings.Join(g.Components, ", "))
		}
	}
	return nil
}
