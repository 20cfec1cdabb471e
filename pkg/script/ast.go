package script

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a parsed session: one statement per line or per ';'.
type Script struct {
	Statements []*Statement `EOL* ( @@ EOL* )*`
}

// Statement is a single editor action.
type Statement struct {
	Pos lexer.Position

	Place   *Place   `  @@`
	Connect *Connect `| @@`
	Select  *Select  `| @@`
	Move    *Move    `| @@`
	Drag    *Drag    `| @@`
	Remove  *Remove  `| @@`
	Reroute *Reroute `| @@`
	Set     *Set     `| @@`
	Pan     *Pan     `| @@`
	Zoom    *Zoom    `| @@`
}

// Place: place resistor at 0,0 [as R1]
type Place struct {
	Type  Name   `"place" @@`
	At    *Point `"at" @@`
	Label string `( "as" @Ident )?`
}

// Connect: connect R1.right C1.left
type Connect struct {
	From *TermRef `"connect" @@`
	To   *TermRef `"to"? @@`
}

// Select: select R1.left (a terminal click)
type Select struct {
	Terminal *TermRef `"select" @@`
}

// Move: move R1 to 40,0
type Move struct {
	Component string `"move" @Ident`
	To        *Point `"to" @@`
}

// Drag: drag R1 to 0,10 0,20 0,40
type Drag struct {
	Component string   `"drag" @Ident`
	Path      []*Point `"to" @@+`
}

// Remove: remove C1
type Remove struct {
	Component string `"remove" @Ident`
}

// Reroute: reroute
type Reroute struct {
	Keyword string `@"reroute"`
}

// Set: set policy wires | set batch sequential | set drag deferred
type Set struct {
	Key   string `"set" @( "policy" | "batch" | "drag" )`
	Value string `@Ident`
}

// Pan: pan 10,-20 (screen pixels)
type Pan struct {
	By *Point `"pan" @@`
}

// Zoom: zoom 1.5 [at 400,300]
type Zoom struct {
	Factor float64 `"zoom" @Number`
	At     *Point  `( "at" @@ )?`
}

// Name is a palette type written bare or quoted.
type Name struct {
	Value string `@(String | Ident)`
}

// Text returns the name without quotes.
func (n Name) Text() string {
	if s, err := strconv.Unquote(n.Value); err == nil {
		return s
	}
	return n.Value
}

// Point is an x,y pair.
type Point struct {
	X float64 `@Number ","`
	Y float64 `@Number`
}

// TermRef names a terminal as Label.side.
type TermRef struct {
	Component string `@Ident "."`
	Side      string `@Ident`
}
