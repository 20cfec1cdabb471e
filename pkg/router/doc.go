// Package router finds orthogonal wire routes on the quantized grid.
//
// # Overview
//
// A route request carries two terminal positions and an obstacle map built by
// package obstacle. The search:
//  1. Quantizes both terminals to cells
//  2. Runs A* over 4-connected cells inside the map bounds, unit step cost,
//     Manhattan distance as heuristic
//  3. Walks the parent links back from the goal and converts cells to world
//     points, merging collinear runs into single segments
//
// # Frontier
//
// The open set is an indexed binary heap keyed by cell. Relaxing a neighbour
// that is already queued lowers its priority in place (decrease-key) instead
// of queueing a duplicate. Entries are ordered by f, then h, then the order
// in which the cell was first queued, so identical requests always yield
// identical routes. Neighbours are expanded in the order +X, -X, +Y, -Y.
//
// # Budget and fallback
//
// The elapsed time is checked before every pop. When the budget runs out, or
// the frontier empties without reaching the goal, the result is the direct
// two-point path [start, end] using the caller's points verbatim. The two
// cases differ only in Result.Outcome; the waypoints are the same.
//
// # Usage
//
//	m := obstacle.Build(obstacle.Both, src, grid.ToCell(a), grid.ToCell(b), obstacle.DefaultOptions())
//	r := router.New(router.DefaultConfig())
//	pts := r.Route(a, b, m)
package router
