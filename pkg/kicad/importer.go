// Package kicad reads the placed geometry of a KiCad schematic
// (.kicad_sch) so it can be used as routing obstacles: wire segments become
// polylines and symbol instances become footprint boxes.
package kicad

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
)

// DefaultScale maps KiCad's 2.54 mm grid onto the 20-unit placement step.
const DefaultScale = 20.0 / 2.54

// Default symbol box half-size in millimetres when no pin extent is known
const (
	DefaultSymbolHalfWidth  = 5.08
	DefaultSymbolHalfHeight = 2.54
)

var ErrNotSchematic = errors.New("not a kicad_sch file")

// Symbol is one placed symbol instance.
type Symbol struct {
	Reference string
	LibID     string
	At        grid.Point
	Bounds    grid.RectF
}

// Sheet is the obstacle geometry of one schematic, in world units.
type Sheet struct {
	Version string
	Wires   [][]grid.Point
	Symbols []Symbol
}

// Options control unit conversion.
type Options struct {
	Scale      float64 // World units per millimetre
	HalfWidth  float64 // Symbol box half-width, mm
	HalfHeight float64 // Symbol box half-height, mm
}

// DefaultOptions returns the standard conversion.
func DefaultOptions() Options {
	return Options{
		Scale:      DefaultScale,
		HalfWidth:  DefaultSymbolHalfWidth,
		HalfHeight: DefaultSymbolHalfHeight,
	}
}

// Source returns the sheet as a routing obstacle source.
func (s *Sheet) Source() obstacle.Source {
	src := obstacle.Source{Wires: s.Wires}
	for _, sym := range s.Symbols {
		src.Footprints = append(src.Footprints, sym.Bounds)
	}
	return src
}

// Parse reads a schematic from r.
func Parse(r io.Reader, opts Options) (sheet *Sheet, err error) {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}

	// The s-expression walker can panic on malformed input.
	defer func() {
		if rec := recover(); rec != nil {
			sheet, err = nil, fmt.Errorf("parse error: malformed s-expression: %v", rec)
		}
	}()

	exprs, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	var root sexp.Sexp
	for _, e := range exprs {
		if e != nil && !e.IsLeaf() && key(e) == "kicad_sch" {
			root = e
			break
		}
	}
	if root == nil {
		return nil, ErrNotSchematic
	}

	sheet = &Sheet{}
	if v, ok := find(root, "version"); ok {
		if items := children(v); len(items) > 1 {
			sheet.Version = atom(items[1])
		}
	}

	for _, w := range findAll(root, "wire") {
		pts, err := readPts(w, opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		if len(pts) >= 2 {
			sheet.Wires = append(sheet.Wires, pts)
		}
	}

	for _, s := range findAll(root, "symbol") {
		sym, ok, err := readSymbol(s, opts)
		if err != nil {
			return nil, fmt.Errorf("symbol: %w", err)
		}
		if ok {
			sheet.Symbols = append(sheet.Symbols, sym)
		}
	}

	return sheet, nil
}

// ParseString reads a schematic from a string.
func ParseString(input string, opts Options) (*Sheet, error) {
	return Parse(strings.NewReader(input), opts)
}

// ParseFile reads a schematic from a file path.
func ParseFile(filename string, opts Options) (*Sheet, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file, opts)
}

func readPts(node sexp.Sexp, scale float64) ([]grid.Point, error) {
	pts, ok := find(node, "pts")
	if !ok {
		return nil, fmt.Errorf("missing pts")
	}
	var out []grid.Point
	for _, p := range findAll(pts, "xy") {
		x, y, err := xy(p)
		if err != nil {
			return nil, err
		}
		out = append(out, grid.Pt(x*scale, y*scale))
	}
	return out, nil
}

// readSymbol reads a placed instance. Library definitions nested under
// lib_symbols have no (at) node and are skipped.
func readSymbol(node sexp.Sexp, opts Options) (Symbol, bool, error) {
	at, ok := find(node, "at")
	if !ok {
		return Symbol{}, false, nil
	}
	x, y, err := xy(at)
	if err != nil {
		return Symbol{}, false, err
	}

	sym := Symbol{At: grid.Pt(x*opts.Scale, y*opts.Scale)}
	if lib, ok := find(node, "lib_id"); ok {
		if items := children(lib); len(items) > 1 {
			sym.LibID = atom(items[1])
		}
	}
	for _, prop := range findAll(node, "property") {
		items := children(prop)
		if len(items) > 2 && atom(items[1]) == "Reference" {
			sym.Reference = atom(items[2])
		}
	}

	hw, hh := opts.HalfWidth, opts.HalfHeight
	if hw <= 0 {
		hw = DefaultSymbolHalfWidth
	}
	if hh <= 0 {
		hh = DefaultSymbolHalfHeight
	}
	// Quarter turns swap the box axes.
	if angle, err := floatAt(at, 3); err == nil && int(angle)%180 != 0 {
		hw, hh = hh, hw
	}
	sym.Bounds = grid.Around(sym.At, hw*opts.Scale, hh*opts.Scale)
	return sym, true, nil
}
