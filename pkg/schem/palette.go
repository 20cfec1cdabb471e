package schem

import "strings"

// Palette lists the component types offered for placement, in display order.
var Palette = []string{
	"Resistor",
	"Capacitor",
	"Inductor",
	"Voltage Source",
	"Current Source",
	"Diode",
	"Transistor",
	"Op-Amp",
	"Motor",
	"Switch",
}

// LookupType returns the palette spelling of typ, matched case-insensitively.
func LookupType(typ string) (string, bool) {
	for _, p := range Palette {
		if strings.EqualFold(p, typ) {
			return p, true
		}
	}
	return "", false
}

// RefPrefix returns the conventional reference designator prefix for a type.
func RefPrefix(typ string) string {
	switch typ {
	case "Resistor":
		return "R"
	case "Capacitor":
		return "C"
	case "Inductor":
		return "L"
	case "Voltage Source", "Current Source":
		return "V"
	case "Diode":
		return "D"
	case "Transistor":
		return "Q"
	case "Op-Amp":
		return "U"
	case "Motor":
		return "M"
	case "Switch":
		return "SW"
	}
	return "X"
}
