package editor

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/router"
)

// BatchMode selects how RerouteAll orders wires against each other.
type BatchMode int

const (
	// Frozen routes every wire against the obstacle snapshot taken before the
	// batch; wires rerouted in the same batch never see each other's new paths.
	Frozen BatchMode = iota
	// Sequential routes wires in creation order against the live snapshot.
	Sequential
)

func (b BatchMode) String() string {
	if b == Sequential {
		return "sequential"
	}
	return "frozen"
}

// ParseBatchMode accepts "frozen" or "sequential". Empty means Frozen.
func ParseBatchMode(s string) (BatchMode, error) {
	switch strings.ToLower(s) {
	case "", "frozen":
		return Frozen, nil
	case "sequential", "seq":
		return Sequential, nil
	}
	return Frozen, fmt.Errorf("unknown batch mode %q (want frozen or sequential)", s)
}

// Set implements pflag.Value.
func (b *BatchMode) Set(s string) error {
	v, err := ParseBatchMode(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Type implements pflag.Value.
func (b *BatchMode) Type() string { return "batch" }

// DragMode selects when wires follow a dragged component.
type DragMode int

const (
	// Live reroutes the attached wires on every drag event.
	Live DragMode = iota
	// Deferred moves terminals during the drag, marks attached wires stale,
	// and reroutes them once when the drag ends.
	Deferred
)

func (d DragMode) String() string {
	if d == Deferred {
		return "deferred"
	}
	return "live"
}

// ParseDragMode accepts "live" or "deferred". Empty means Live.
func ParseDragMode(s string) (DragMode, error) {
	switch strings.ToLower(s) {
	case "", "live":
		return Live, nil
	case "deferred":
		return Deferred, nil
	}
	return Live, fmt.Errorf("unknown drag mode %q (want live or deferred)", s)
}

// Set implements pflag.Value.
func (d *DragMode) Set(s string) error {
	v, err := ParseDragMode(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Type implements pflag.Value.
func (d *DragMode) Type() string { return "drag" }

// Config holds editor behaviour settings.
type Config struct {
	Policy obstacle.Policy // Obstacle sources for each route (default: both)
	Batch  BatchMode       // RerouteAll ordering (default: frozen)
	Drag   DragMode        // Drag coalescing (default: live)
	Extent grid.Extent     // Placement snapping and clamping
	Router router.Config
}

// DefaultConfig returns the standard editor configuration.
func DefaultConfig() *Config {
	return &Config{
		Policy: obstacle.Both,
		Batch:  Frozen,
		Drag:   Live,
		Extent: grid.DefaultExtent,
		Router: *router.DefaultConfig(),
	}
}

// Validate clamps out-of-range values to their defaults.
func (c *Config) Validate() error {
	if c.Policy < obstacle.Both || c.Policy > obstacle.None {
		c.Policy = obstacle.Both
	}
	if c.Batch != Frozen && c.Batch != Sequential {
		c.Batch = Frozen
	}
	if c.Drag != Live && c.Drag != Deferred {
		c.Drag = Live
	}
	if c.Extent.Step <= 0 {
		c.Extent.Step = grid.CellSize
	}
	if c.Extent.Columns < 0 {
		c.Extent.Columns = 0
	}
	if c.Extent.Rows < 0 {
		c.Extent.Rows = 0
	}
	return c.Router.Validate()
}
