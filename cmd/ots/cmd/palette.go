package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the component types that can be placed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, typ := range schem.Palette {
			fmt.Fprintf(out, "%-16s %s\n", typ, schem.RefPrefix(typ))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}
