package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/kicad"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/router"
)

var (
	routeFrom   string
	routeTo     string
	routeBlocks []string
	routeWires  []string
	routeKiCad  string
	routeBudget time.Duration
	routeJSON   bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route a single wire between two points",
	Long: `Route one wire from --from to --to and print its waypoints.

Obstacles are rectangles given with --block (min corner and size), polylines
given with --wire, and wires and symbols read from a KiCad schematic with
--kicad. The global --policy selects which of them block the route.

Examples:
  ots route --from 20,0 --to 80,0
  ots route --from 0,0 --to 100,0 --block 40,-30,20,60
  ots route --from 0,0 --to 100,0 --wire 50,-50:50,50 --policy wires
  ots route --from 0,0 --to 400,400 --kicad board.kicad_sch --json`,
	Args: cobra.NoArgs,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVar(&routeFrom, "from", "", "start point x,y (required)")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "end point x,y (required)")
	routeCmd.Flags().StringArrayVar(&routeBlocks, "block", nil, "footprint obstacle x,y,w,h (repeatable)")
	routeCmd.Flags().StringArrayVar(&routeWires, "wire", nil, "wire obstacle x,y:x,y[:x,y...] (repeatable)")
	routeCmd.Flags().StringVar(&routeKiCad, "kicad", "", "read obstacles from a .kicad_sch file")
	routeCmd.Flags().DurationVar(&routeBudget, "budget", 0, "search time limit (default from config)")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "output as JSON")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
}

func runRoute(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	from, err := parsePoint(routeFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parsePoint(routeTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	var src obstacle.Source
	if routeKiCad != "" {
		sheet, err := kicad.ParseFile(routeKiCad, kicad.DefaultOptions())
		if err != nil {
			return fmt.Errorf("error reading schematic: %w", err)
		}
		src = sheet.Source()
	}
	for _, b := range routeBlocks {
		r, err := parseRect(b)
		if err != nil {
			return fmt.Errorf("--block %s: %w", b, err)
		}
		src.Footprints = append(src.Footprints, r)
	}
	for _, w := range routeWires {
		pts, err := parsePolyline(w)
		if err != nil {
			return fmt.Errorf("--wire %s: %w", w, err)
		}
		src.Wires = append(src.Wires, pts)
	}

	rcfg := cfg.Router
	if routeBudget > 0 {
		rcfg.Budget = routeBudget
	}
	r := router.New(&rcfg, router.WithLogger(newLogger()))
	res := r.RouteSource(from, to, cfg.Policy, src)

	out := cmd.OutOrStdout()
	if routeJSON {
		data, err := json.MarshalIndent(struct {
			Outcome  string       `json:"outcome"`
			Points   []grid.Point `json:"points"`
			Length   float64      `json:"length"`
			Expanded int          `json:"expanded"`
		}{res.Outcome.String(), res.Points, grid.PathLength(res.Points), res.Expanded}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Outcome: %s\n", res.Outcome)
	fmt.Fprintf(out, "Length: %g\n", grid.PathLength(res.Points))
	fmt.Fprintf(out, "Expanded: %d\n", res.Expanded)
	fmt.Fprintln(out, "Waypoints:")
	for _, p := range res.Points {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (grid.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return grid.Point{}, err
	}
	return grid.Pt(v[0], v[1]), nil
}

// parseRect parses "x,y,w,h" with x,y the minimum corner.
func parseRect(s string) (grid.RectF, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return grid.RectF{}, err
	}
	if v[2] < 0 || v[3] < 0 {
		return grid.RectF{}, fmt.Errorf("negative size")
	}
	return grid.RectF{Min: grid.Pt(v[0], v[1]), Max: grid.Pt(v[0]+v[2], v[1]+v[3])}, nil
}

// parsePolyline parses "x,y:x,y:...".
func parsePolyline(s string) ([]grid.Point, error) {
	var pts []grid.Point
	for _, part := range strings.Split(s, ":") {
		p, err := parsePoint(part)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("a wire needs at least two points")
	}
	return pts, nil
}
