// Package netlist derives electrical connectivity from an editor snapshot.
//
// Terminals joined by wires form nets; components joined through their
// connection sets form groups. Both are computed as connected components of
// an undirected gonum graph.
package netlist

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/editor"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// Pin names one terminal of a component.
type Pin struct {
	Component string `json:"component"`
	Type      string `json:"type"`
	Side      string `json:"side"`
}

func (p Pin) String() string {
	return p.Component + "." + p.Side
}

// Net is a set of terminals joined by wires.
type Net struct {
	ID   int   `json:"id"`
	Pins []Pin `json:"pins"`
}

// Group is a set of components reachable through their connection sets.
type Group struct {
	ID         int      `json:"id"`
	Components []string `json:"components"`
}

// Netlist is the connectivity of one snapshot.
type Netlist struct {
	Nets   []*Net   `json:"nets"`
	Groups []*Group `json:"groups"`
}

// Build computes nets and groups for snap. Only nets with two or more pins
// and groups with two or more components are kept.
func Build(snap editor.Snapshot) *Netlist {
	index := make(map[uuid.UUID]int64, len(snap.Components))
	for i, c := range snap.Components {
		index[c.ID] = int64(i)
	}

	return &Netlist{
		Nets:   buildNets(snap, index),
		Groups: buildGroups(snap, index),
	}
}

// pinNode maps a terminal to a node ID: two per component.
func pinNode(index map[uuid.UUID]int64, ref schem.TerminalRef) (int64, bool) {
	i, ok := index[ref.ComponentID]
	if !ok {
		return 0, false
	}
	return i*2 + int64(ref.Side), true
}

func buildNets(snap editor.Snapshot, index map[uuid.UUID]int64) []*Net {
	g := simple.NewUndirectedGraph()
	for i := range snap.Components {
		g.AddNode(simple.Node(int64(i) * 2))
		g.AddNode(simple.Node(int64(i)*2 + 1))
	}
	for _, w := range snap.Wires {
		a, okA := pinNode(index, w.Start)
		b, okB := pinNode(index, w.End)
		if !okA || !okB || a == b {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
	}

	var nets []*Net
	for _, nodes := range components(g) {
		if len(nodes) < 2 {
			continue
		}
		pins := make([]Pin, 0, len(nodes))
		for _, n := range nodes {
			c := snap.Components[n.ID()/2]
			side := schem.Side(n.ID() % 2)
			pins = append(pins, Pin{Component: c.Name(), Type: c.Type, Side: side.String()})
		}
		sort.Slice(pins, func(i, j int) bool {
			if pins[i].Component != pins[j].Component {
				return pins[i].Component < pins[j].Component
			}
			return pins[i].Side < pins[j].Side
		})
		nets = append(nets, &Net{Pins: pins})
	}

	sort.Slice(nets, func(i, j int) bool {
		return nets[i].Pins[0].String() < nets[j].Pins[0].String()
	})
	for i, n := range nets {
		n.ID = i + 1
	}
	return nets
}

func buildGroups(snap editor.Snapshot, index map[uuid.UUID]int64) []*Group {
	g := simple.NewUndirectedGraph()
	for i := range snap.Components {
		g.AddNode(simple.Node(int64(i)))
	}
	for i, c := range snap.Components {
		for _, id := range c.Connections() {
			j, ok := index[id]
			if !ok || j == int64(i) {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(int64(i)), simple.Node(j)))
		}
	}

	var groups []*Group
	for _, nodes := range components(g) {
		if len(nodes) < 2 {
			continue
		}
		names := make([]string, 0, len(nodes))
		for _, n := range nodes {
			names = append(names, snap.Components[n.ID()].Name())
		}
		sort.Strings(names)
		groups = append(groups, &Group{Components: names})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Components[0] < groups[j].Components[0]
	})
	for i, gr := range groups {
		gr.ID = i + 1
	}
	return groups
}

func components(g graph.Undirected) [][]graph.Node {
	return topo.ConnectedComponents(g)
}

// NetCount returns the number of nets.
func (nl *Netlist) NetCount() int {
	return len(nl.Nets)
}

// NetOf returns the net containing pin, if any.
func (nl *Netlist) NetOf(component, side string) (*Net, bool) {
	for _, n := range nl.Nets {
		for _, p := range n.Pins {
			if strings.EqualFold(p.Component, component) && p.Side == side {
				return n, true
			}
		}
	}
	return nil, false
}

// ExportJSON encodes the netlist with a small header.
func (nl *Netlist) ExportJSON() ([]byte, error) {
	output := struct {
		Version     string   `json:"version"`
		NetCount    int      `json:"net_count"`
		GroupCount  int      `json:"group_count"`
		Nets        []*Net   `json:"nets"`
		Groups      []*Group `json:"groups"`
		GeneratedBy string   `json:"generated_by"`
	}{
		Version:     "1.0",
		NetCount:    nl.NetCount(),
		GroupCount:  len(nl.Groups),
		Nets:        nonNil(nl.Nets),
		Groups:      nonNilGroups(nl.Groups),
		GeneratedBy: "opentraceschem",
	}
	return json.MarshalIndent(output, "", "  ")
}

// ExportKiCad writes the nets in KiCad's s-expression netlist layout.
func (nl *Netlist) ExportKiCad() string {
	var b strings.Builder
	b.WriteString("(export (version D)\n")
	b.WriteString("  (design\n")
	b.WriteString("    (source \"OpenTraceSchem\")\n")
	b.WriteString("  )\n")

	seen := make(map[string]string)
	var refs []string
	for _, n := range nl.Nets {
		for _, p := range n.Pins {
			if _, ok := seen[p.Component]; !ok {
				seen[p.Component] = p.Type
				refs = append(refs, p.Component)
			}
		}
	}
	sort.Strings(refs)

	b.WriteString("  (components\n")
	for _, ref := range refs {
		fmt.Fprintf(&b, "    (comp (ref %s) (value %q))\n", ref, seen[ref])
	}
	b.WriteString("  )\n")

	b.WriteString("  (nets\n")
	for _, n := range nl.Nets {
		fmt.Fprintf(&b, "    (net (code %d) (name \"Net-%d\")\n", n.ID, n.ID)
		for _, p := range n.Pins {
			fmt.Fprintf(&b, "      (node (ref %s) (pin %d))\n", p.Component, pinNumber(p.Side))
		}
		b.WriteString("    )\n")
	}
	b.WriteString("  )\n")
	b.WriteString(")\n")
	return b.String()
}

func pinNumber(side string) int {
	if side == schem.Left.String() {
		return 1
	}
	return 2
}

func nonNil(n []*Net) []*Net {
	if n == nil {
		return []*Net{}
	}
	return n
}

func nonNilGroups(g []*Group) []*Group {
	if g == nil {
		return []*Group{}
	}
	return g
}
