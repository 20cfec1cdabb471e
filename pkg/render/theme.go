package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme selects a colour scheme.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme accepts "light" or "dark". Empty means light.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("unknown theme %q", s)
}

// Colors is the palette used to draw a drawing.
type Colors struct {
	Background color.NRGBA
	Grid       color.NRGBA

	// Wires
	Wire         color.NRGBA
	FallbackWire color.NRGBA // Straight path after a failed search
	StaleWire    color.NRGBA // Waiting for a deferred reroute

	// Components
	Body     color.NRGBA
	BodyFill color.NRGBA
	Label    color.NRGBA

	// Terminals
	Terminal      color.NRGBA
	TerminalArmed color.NRGBA
}

// GetColors returns the colours for theme.
func GetColors(theme Theme) *Colors {
	if theme == ThemeDark {
		return darkColors()
	}
	return lightColors()
}

func lightColors() *Colors {
	return &Colors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},

		Wire:         color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		FallbackWire: color.NRGBA{R: 200, G: 90, B: 0, A: 255},
		StaleWire:    color.NRGBA{R: 0, G: 132, B: 0, A: 110},

		Body:     color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		BodyFill: color.NRGBA{R: 255, G: 255, B: 194, A: 255},
		Label:    color.NRGBA{R: 0, G: 0, B: 0, A: 255},

		Terminal:      color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		TerminalArmed: color.NRGBA{R: 0, G: 120, B: 255, A: 255},
	}
}

func darkColors() *Colors {
	return &Colors{
		Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
		Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},

		Wire:         color.NRGBA{R: 0, G: 200, B: 0, A: 255},
		FallbackWire: color.NRGBA{R: 255, G: 150, B: 50, A: 255},
		StaleWire:    color.NRGBA{R: 0, G: 200, B: 0, A: 110},

		Body:     color.NRGBA{R: 200, G: 80, B: 80, A: 255},
		BodyFill: color.NRGBA{R: 60, G: 60, B: 40, A: 255},
		Label:    color.NRGBA{R: 220, G: 220, B: 220, A: 255},

		Terminal:      color.NRGBA{R: 200, G: 80, B: 80, A: 255},
		TerminalArmed: color.NRGBA{R: 80, G: 170, B: 255, A: 255},
	}
}
