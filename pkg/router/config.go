package router

import (
	"time"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
)

// DefaultBudget is the wall-clock limit for one search.
const DefaultBudget = time.Second

// Config controls search behaviour.
type Config struct {
	// Budget is the wall-clock limit per search (default: 1s)
	Budget time.Duration

	// Simplify merges collinear waypoints into single segments (default: true)
	Simplify bool

	// Obstacles sizes the search region when the router builds its own map
	Obstacles obstacle.Options
}

// DefaultConfig returns a Config with the standard budget and region sizing.
func DefaultConfig() *Config {
	return &Config{
		Budget:    DefaultBudget,
		Simplify:  true,
		Obstacles: obstacle.DefaultOptions(),
	}
}

// Validate clamps out-of-range values to their defaults.
func (c *Config) Validate() error {
	if c.Budget <= 0 {
		c.Budget = DefaultBudget
	}
	if c.Obstacles.Margin < 0 {
		c.Obstacles.Margin = obstacle.DefaultMargin
	}
	if c.Obstacles.MaxCells <= 0 {
		c.Obstacles.MaxCells = obstacle.DefaultMaxCells
	}
	return nil
}
