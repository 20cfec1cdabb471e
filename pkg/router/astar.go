package router

import (
	"io"
	"log/slog"
	"time"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// neighbours in expansion order: +X, -X, +Y, -Y
var neighbours = [4]grid.Cell{{I: 1}, {I: -1}, {J: 1}, {J: -1}}

// Result is the full outcome of one search.
type Result struct {
	Points   []grid.Point
	Outcome  schem.Outcome
	Expanded int // Cells popped from the frontier
	Elapsed  time.Duration
}

// Router runs A* searches. A Router holds no per-search state and may be
// reused; it is not safe for concurrent use when metrics are attached.
type Router struct {
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option customises a Router.
type Option func(*Router)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records every search into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// WithClock replaces time.Now for budget checks.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// New returns a Router. A nil cfg means DefaultConfig().
func New(cfg *Config, opts ...Option) *Router {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.Validate()

	r := &Router{
		cfg: c,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the validated configuration.
func (r *Router) Config() Config {
	return r.cfg
}

// Route returns the waypoints from start to end. See Search.
func (r *Router) Route(start, end grid.Point, m *obstacle.Map) []grid.Point {
	return r.Search(start, end, m).Points
}

// Search finds a shortest orthogonal path from start to end through the
// passable cells of m. A nil map means an empty region around the endpoints.
//
// On success the first waypoint is start quantized and the last is end
// quantized. On timeout or exhaustion Points is [start, end] verbatim.
func (r *Router) Search(start, end grid.Point, m *obstacle.Map) Result {
	began := r.now()
	from, goal := grid.ToCell(start), grid.ToCell(end)
	if m == nil {
		m = obstacle.NewMap(grid.RectOf(from, goal).Grow(r.cfg.Obstacles.Margin))
	}

	res := r.search(from, goal, m, began)
	if res.Outcome.Fallback() {
		res.Points = []grid.Point{start, end}
		r.log.Debug("route fallback",
			slog.String("outcome", res.Outcome.String()),
			slog.String("from", start.String()),
			slog.String("to", end.String()),
			slog.Int("expanded", res.Expanded),
			slog.Int("blocked", m.Len()))
	} else {
		res.Points = toWorld(res.cells(), r.cfg.Simplify)
	}
	res.Elapsed = r.now().Sub(began)
	r.metrics.observe(res)
	return res.Result
}

// searchResult carries the parent links out of the search loop.
type searchResult struct {
	Result
	parent     map[grid.Cell]grid.Cell
	start, end grid.Cell
}

func (s searchResult) cells() []grid.Cell {
	return reconstruct(s.parent, s.start, s.end)
}

func (r *Router) search(start, goal grid.Cell, m *obstacle.Map, began time.Time) searchResult {
	res := searchResult{start: start, end: goal, parent: make(map[grid.Cell]grid.Cell)}
	if start == goal {
		res.Outcome = schem.Routed
		return res
	}

	g := map[grid.Cell]int{start: 0}
	closed := make(map[grid.Cell]bool)
	open := newFrontier()
	h0 := grid.Manhattan(start, goal)
	open.Upsert(start, h0, h0)

	for open.Len() > 0 {
		if r.now().Sub(began) > r.cfg.Budget {
			res.Outcome = schem.TimedOut
			return res
		}

		cur := open.Pop()
		if cur == goal {
			res.Outcome = schem.Routed
			return res
		}
		closed[cur] = true
		res.Expanded++

		for _, d := range neighbours {
			n := grid.Cell{I: cur.I + d.I, J: cur.J + d.J}
			if closed[n] || !m.Passable(n) {
				continue
			}
			ng := g[cur] + 1
			if old, ok := g[n]; ok && ng >= old {
				continue
			}
			g[n] = ng
			res.parent[n] = cur
			h := grid.Manhattan(n, goal)
			open.Upsert(n, ng+h, h)
		}
	}

	res.Outcome = schem.Exhausted
	return res
}
