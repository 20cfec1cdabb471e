package router

import (
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
)

// Route builds the obstacle map for policy over src and routes start to end
// with the default configuration.
func Route(start, end grid.Point, policy obstacle.Policy, src obstacle.Source) []grid.Point {
	return New(nil).RouteSource(start, end, policy, src).Points
}

// RouteSource builds the obstacle map for policy over src using r's region
// sizing, then searches it.
func (r *Router) RouteSource(start, end grid.Point, policy obstacle.Policy, src obstacle.Source) Result {
	m := obstacle.Build(policy, src, grid.ToCell(start), grid.ToCell(end), r.cfg.Obstacles)
	return r.Search(start, end, m)
}
