// Package editor maintains a schematic: placed components, the wires between
// their terminals, and the routes those wires follow. Every edit that moves a
// terminal recomputes the affected routes before returning.
//
// Stored geometry is always in logical (world) coordinates. Pan and zoom are
// applied by the renderer and never reach the editor.
//
// An Editor is not safe for concurrent use.
package editor

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/router"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// Editor owns the drawing state.
type Editor struct {
	cfg     Config
	router  *router.Router
	log     *slog.Logger
	metrics *Metrics

	components map[uuid.UUID]*schem.Component
	order      []uuid.UUID  // Component insertion order
	wires      []schem.Wire // Creation order
	labels     map[string]int

	pending *schem.TerminalRef // Armed terminal awaiting its pair
	drag    *dragState

	routerOpts []router.Option
}

// Option customises an Editor.
type Option func(*Editor)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics records editor activity into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Editor) { e.metrics = m }
}

// WithRouterOptions passes options through to the editor's router.
func WithRouterOptions(opts ...router.Option) Option {
	return func(e *Editor) { e.routerOpts = append(e.routerOpts, opts...) }
}

// New returns an empty editor. A nil cfg means DefaultConfig().
func New(cfg *Config, opts ...Option) *Editor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.Validate()

	e := &Editor{
		cfg:        c,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		components: make(map[uuid.UUID]*schem.Component),
		labels:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	ropts := append([]router.Option{router.WithLogger(e.log)}, e.routerOpts...)
	e.router = router.New(&c.Router, ropts...)
	return e
}

// Config returns the validated configuration.
func (e *Editor) Config() Config {
	return e.cfg
}

// SetPolicy changes the obstacle policy for subsequent routes.
func (e *Editor) SetPolicy(p obstacle.Policy) {
	e.cfg.Policy = p
}

// SetBatchMode changes how RerouteAll orders wires.
func (e *Editor) SetBatchMode(b BatchMode) {
	e.cfg.Batch = b
}

// SetDragMode changes drag coalescing. A drag in progress keeps its mode.
func (e *Editor) SetDragMode(d DragMode) {
	e.cfg.Drag = d
}

// Place adds a component of a palette type at anchor, snapped and clamped to
// the canvas. An empty label is replaced by the next free reference
// designator for the type (R1, R2, ...).
func (e *Editor) Place(typ, label string, anchor grid.Point) (*schem.Component, error) {
	name, ok := schem.LookupType(typ)
	if !ok {
		return nil, fmt.Errorf("place %q: %w", typ, ErrUnknownType)
	}
	if label == "" {
		label = e.nextLabel(name)
	}

	c := schem.NewComponent(name, label, e.cfg.Extent.Clamp(anchor))
	e.components[c.ID] = c
	e.order = append(e.order, c.ID)
	e.metrics.setCounts(len(e.components), len(e.wires))

	e.log.Debug("component placed",
		slog.String("label", c.Label),
		slog.String("type", c.Type),
		slog.String("anchor", c.Anchor.String()))
	return c.Clone(), nil
}

func (e *Editor) nextLabel(typ string) string {
	prefix := schem.RefPrefix(typ)
	for {
		e.labels[prefix]++
		label := fmt.Sprintf("%s%d", prefix, e.labels[prefix])
		if _, taken := e.lookupLabel(label); !taken {
			return label
		}
	}
}

// Remove deletes a component, every wire attached to it, and its entries in
// other components' connection sets.
func (e *Editor) Remove(id uuid.UUID) error {
	c, ok := e.components[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrUnknownComponent)
	}

	delete(e.components, id)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	for _, other := range e.components {
		other.Disconnect(id)
	}

	kept := e.wires[:0]
	dropped := 0
	for _, w := range e.wires {
		if w.Touches(id) {
			dropped++
			continue
		}
		kept = append(kept, w)
	}
	e.wires = kept
	e.metrics.dropped(dropped)

	if e.pending != nil && e.pending.ComponentID == id {
		e.pending = nil
	}
	if e.drag != nil && e.drag.id == id {
		e.drag = nil
	}
	e.metrics.setCounts(len(e.components), len(e.wires))

	e.log.Debug("component removed", slog.String("label", c.Label), slog.Int("wires_dropped", dropped))
	return nil
}

// Connect creates a wire between two terminals on different components and
// routes it against the current drawing.
func (e *Editor) Connect(a, b schem.TerminalRef) (schem.Wire, error) {
	ca, ok := e.components[a.ComponentID]
	if !ok {
		return schem.Wire{}, fmt.Errorf("connect %s: %w", a, ErrUnknownComponent)
	}
	cb, ok := e.components[b.ComponentID]
	if !ok {
		return schem.Wire{}, fmt.Errorf("connect %s: %w", b, ErrUnknownComponent)
	}
	if a.ComponentID == b.ComponentID {
		return schem.Wire{}, fmt.Errorf("connect %s.%s: %w", ca.Name(), b.Side, ErrSameComponent)
	}

	w := schem.NewWire(a, b)
	w, _ = e.route(w, e.liveSource(w.ID, nil))
	e.wires = append(e.wires, w)
	ca.Connect(cb.ID)
	cb.Connect(ca.ID)

	e.metrics.rerouted("connect", 1)
	e.metrics.setCounts(len(e.components), len(e.wires))
	e.log.Debug("wire created",
		slog.String("from", ca.Name()+"."+a.Side.String()),
		slog.String("to", cb.Name()+"."+b.Side.String()),
		slog.String("outcome", w.Outcome.String()),
		slog.Int("points", len(w.Points)))
	return w, nil
}

// ViewChanged notes a pan or zoom. Stored routes are logical, so nothing is
// recomputed.
func (e *Editor) ViewChanged() {
	e.log.Debug("view changed")
}

// Components returns copies of the placed components in insertion order.
func (e *Editor) Components() []*schem.Component {
	out := make([]*schem.Component, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.components[id].Clone())
	}
	return out
}

// Component returns a copy of the component with id.
func (e *Editor) Component(id uuid.UUID) (*schem.Component, bool) {
	c, ok := e.components[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// ComponentByLabel finds a component by its label, case-insensitively.
func (e *Editor) ComponentByLabel(label string) (*schem.Component, bool) {
	c, ok := e.lookupLabel(label)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

func (e *Editor) lookupLabel(label string) (*schem.Component, bool) {
	for _, id := range e.order {
		if c := e.components[id]; strings.EqualFold(c.Label, label) {
			return c, true
		}
	}
	return nil, false
}

// Wires returns the wires in creation order.
func (e *Editor) Wires() []schem.Wire {
	return append([]schem.Wire(nil), e.wires...)
}

// Wire returns the wire with id.
func (e *Editor) Wire(id uuid.UUID) (schem.Wire, bool) {
	if i := e.wireIndex(id); i >= 0 {
		return e.wires[i], true
	}
	return schem.Wire{}, false
}

func (e *Editor) wireIndex(id uuid.UUID) int {
	for i, w := range e.wires {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot is a read-only copy of the drawing.
type Snapshot struct {
	Components []*schem.Component
	Wires      []schem.Wire
	Selected   *schem.TerminalRef
}

// Snapshot copies the current drawing for rendering or export.
func (e *Editor) Snapshot() Snapshot {
	s := Snapshot{Components: e.Components(), Wires: e.Wires()}
	if e.pending != nil {
		ref := *e.pending
		s.Selected = &ref
	}
	return s
}

// Component returns the snapshot component with id.
func (s Snapshot) Component(id uuid.UUID) (*schem.Component, bool) {
	for _, c := range s.Components {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
