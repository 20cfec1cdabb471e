// Package obstacle rasterizes routed wires and component footprints into the
// set of blocked cells a single route request has to avoid.
package obstacle

import (
	"fmt"
	"strings"
)

// Policy selects which parts of the drawing block routing.
type Policy int

const (
	Both       Policy = iota // Footprints and wires
	Components               // Component footprints only
	Wires                    // Previously routed wires only
	None                     // Nothing blocks
)

func (p Policy) String() string {
	switch p {
	case Both:
		return "both"
	case Components:
		return "components"
	case Wires:
		return "wires"
	case None:
		return "none"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// UsesWires reports whether routed wires are obstacles under p.
func (p Policy) UsesWires() bool {
	return p == Both || p == Wires
}

// UsesComponents reports whether footprints are obstacles under p.
func (p Policy) UsesComponents() bool {
	return p == Both || p == Components
}

// ParsePolicy parses the String form of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "":
		return Both, nil
	case "components", "component":
		return Components, nil
	case "wires", "wire":
		return Wires, nil
	case "none":
		return None, nil
	}
	return Both, fmt.Errorf("unknown obstacle policy %q (want components, wires, both or none)", s)
}

// Set implements pflag.Value so a Policy can be bound to a flag directly.
func (p *Policy) Set(s string) error {
	v, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value.
func (p *Policy) Type() string {
	return "policy"
}
