// Package schem holds the editor's data model: components with two terminals,
// and the wires routed between them.
package schem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// Component geometry constants (world units)
const (
	TerminalOffset = 20.0 // Terminal distance from the anchor along X
	BodyHalfWidth  = 22.5 // Default footprint half-width (45 wide body)
	BodyHalfHeight = 7.5  // Default footprint half-height (15 high body)
)

// Side selects one of a component's two terminals.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ParseSide accepts "left"/"l" and "right"/"r" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown terminal side %q", s)
}

// Terminal is a connection point on a component's boundary.
type Terminal struct {
	ID          uuid.UUID
	ComponentID uuid.UUID
	Side        Side
	Position    grid.Point
}

// TerminalRef identifies a terminal by owner and side. It is the value held
// while a terminal waits to be paired.
type TerminalRef struct {
	ComponentID uuid.UUID
	Side        Side
}

func (r TerminalRef) String() string {
	return fmt.Sprintf("%s.%s", r.ComponentID, r.Side)
}

// Footprint is the rectangle a component body occupies around its anchor.
type Footprint struct {
	HalfWidth  float64
	HalfHeight float64
}

// DefaultFootprint is the standard two-terminal body.
var DefaultFootprint = Footprint{HalfWidth: BodyHalfWidth, HalfHeight: BodyHalfHeight}

// Component is a placed two-terminal part.
type Component struct {
	ID        uuid.UUID
	Label     string // Reference designator, e.g. "R1"
	Type      string // Palette type, cosmetic
	Anchor    grid.Point
	Left      Terminal
	Right     Terminal
	Footprint Footprint

	connected map[uuid.UUID]struct{}
}

// NewComponent creates a component at anchor with freshly derived terminals.
func NewComponent(typ, label string, anchor grid.Point) *Component {
	id := uuid.New()
	c := &Component{
		ID:        id,
		Label:     label,
		Type:      typ,
		Footprint: DefaultFootprint,
		Left:      Terminal{ID: uuid.New(), ComponentID: id, Side: Left},
		Right:     Terminal{ID: uuid.New(), ComponentID: id, Side: Right},
		connected: make(map[uuid.UUID]struct{}),
	}
	c.MoveTo(anchor)
	return c
}

// MoveTo sets the anchor and re-derives both terminal positions.
func (c *Component) MoveTo(anchor grid.Point) {
	c.Anchor = anchor
	c.Left.Position = grid.Point{X: anchor.X - TerminalOffset, Y: anchor.Y}
	c.Right.Position = grid.Point{X: anchor.X + TerminalOffset, Y: anchor.Y}
}

// Terminal returns the terminal on the given side.
func (c *Component) Terminal(side Side) Terminal {
	if side == Left {
		return c.Left
	}
	return c.Right
}

// Ref returns the reference for the terminal on side.
func (c *Component) Ref(side Side) TerminalRef {
	return TerminalRef{ComponentID: c.ID, Side: side}
}

// Bounds returns the footprint rectangle in world space.
func (c *Component) Bounds() grid.RectF {
	return grid.Around(c.Anchor, c.Footprint.HalfWidth, c.Footprint.HalfHeight)
}

// Name returns the label, falling back to the short ID.
func (c *Component) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID.String()[:8]
}

// Connect records id as connected. Repeated calls are no-ops.
func (c *Component) Connect(id uuid.UUID) {
	if c.connected == nil {
		c.connected = make(map[uuid.UUID]struct{})
	}
	c.connected[id] = struct{}{}
}

// Disconnect removes id from the connected set.
func (c *Component) Disconnect(id uuid.UUID) {
	delete(c.connected, id)
}

// IsConnected reports whether id is in the connected set.
func (c *Component) IsConnected(id uuid.UUID) bool {
	_, ok := c.connected[id]
	return ok
}

// Connections returns the connected component IDs in a stable order.
func (c *Component) Connections() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.connected))
	for id := range c.connected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// Clone returns a deep copy of c.
func (c *Component) Clone() *Component {
	cp := *c
	cp.connected = make(map[uuid.UUID]struct{}, len(c.connected))
	for id := range c.connected {
		cp.connected[id] = struct{}{}
	}
	return &cp
}
