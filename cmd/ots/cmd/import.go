package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/kicad"
)

var (
	importJSON  bool
	importScale float64
)

var importCmd = &cobra.Command{
	Use:   "import <file.kicad_sch>",
	Short: "Print the obstacles read from a KiCad schematic",
	Long: `Read wires and placed symbols from a KiCad schematic and print them in
world units, the form the router sees them in.

Examples:
  ots import board.kicad_sch
  ots import board.kicad_sch --json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importJSON, "json", false, "output as JSON")
	importCmd.Flags().Float64Var(&importScale, "scale", kicad.DefaultScale, "world units per millimetre")
}

func runImport(cmd *cobra.Command, args []string) error {
	opts := kicad.DefaultOptions()
	opts.Scale = importScale

	sheet, err := kicad.ParseFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	out := cmd.OutOrStdout()
	if importJSON {
		data, err := json.MarshalIndent(sheet, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Schematic: %s\n", args[0])
	if sheet.Version != "" {
		fmt.Fprintf(out, "Version: %s\n", sheet.Version)
	}
	fmt.Fprintf(out, "Wires: %d\n", len(sheet.Wires))
	for _, w := range sheet.Wires {
		fmt.Fprintf(out, "  %s -> %s\n", w[0], w[len(w)-1])
	}
	fmt.Fprintf(out, "Symbols: %d\n", len(sheet.Symbols))
	for _, s := range sheet.Symbols {
		fmt.Fprintf(out, "  %-8s %-20s at %s box %s-%s\n", s.Reference, s.LibID, s.At, s.Bounds.Min, s.Bounds.Max)
	}
	return nil
}
