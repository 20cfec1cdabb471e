package router

import (
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/obstacle"
	"github.com/OpenTraceLab/OpenTraceSchem/pkg/schem"
)

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func samePoints(a, b []grid.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRouteStraightHorizontal(t *testing.T) {
	got := New(nil).Route(grid.Pt(20, 0), grid.Pt(80, 0), nil)
	want := []grid.Point{grid.Pt(20, 0), grid.Pt(80, 0)}
	if !samePoints(got, want) {
		t.Errorf("route = %v, want %v", got, want)
	}
}

func TestRouteZeroDistance(t *testing.T) {
	res := New(nil).Search(grid.Pt(20, 0), grid.Pt(23, 1), nil)
	if res.Outcome != schem.Routed {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	want := []grid.Point{grid.Pt(20, 0), grid.Pt(20, 0)}
	if !samePoints(res.Points, want) {
		t.Errorf("route = %v, want %v", res.Points, want)
	}
}

func TestRouteOptimalWithoutObstacles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	raw := DefaultConfig()
	raw.Simplify = false
	r := New(raw)
	simple := New(nil)

	for n := 0; n < 50; n++ {
		a := grid.Pt(float64(rng.Intn(40)-20)*grid.CellSize, float64(rng.Intn(40)-20)*grid.CellSize)
		b := grid.Pt(float64(rng.Intn(40)-20)*grid.CellSize, float64(rng.Intn(40)-20)*grid.CellSize)
		if grid.ToCell(a) == grid.ToCell(b) {
			continue
		}
		d := grid.Manhattan(grid.ToCell(a), grid.ToCell(b))

		res := r.Search(a, b, nil)
		if res.Outcome != schem.Routed {
			t.Fatalf("%v -> %v: outcome %v", a, b, res.Outcome)
		}
		if len(res.Points) != d+1 {
			t.Errorf("%v -> %v: %d waypoints, want %d", a, b, len(res.Points), d+1)
		}
		if !Orthogonal(res.Points) {
			t.Errorf("%v -> %v: diagonal segment in %v", a, b, res.Points)
		}

		pts := simple.Route(a, b, nil)
		if got := grid.PathLength(pts); got != float64(d)*grid.CellSize {
			t.Errorf("%v -> %v: simplified length %v, want %v", a, b, got, float64(d)*grid.CellSize)
		}
		if pts[0] != grid.ToWorld(grid.ToCell(a)) || pts[len(pts)-1] != grid.ToWorld(grid.ToCell(b)) {
			t.Errorf("%v -> %v: endpoints %v", a, b, pts)
		}
	}
}

func TestRouteAvoidsObstacles(t *testing.T) {
	m := obstacle.NewMap(grid.RectOf(grid.Cell{I: -10, J: -10}, grid.Cell{I: 20, J: 10}))
	for j := -3; j <= 3; j++ {
		m.Block(grid.Cell{I: 5, J: j})
	}

	res := New(nil).Search(grid.Pt(0, 0), grid.Pt(100, 0), m)
	if res.Outcome != schem.Routed {
		t.Fatalf("outcome = %v", res.Outcome)
	}
	if !Orthogonal(res.Points) {
		t.Fatalf("diagonal segment in %v", res.Points)
	}
	for _, c := range obstacle.RasterizePolyline(res.Points) {
		if m.Blocked(c) {
			t.Errorf("path crosses blocked cell %v", c)
		}
	}
	// Around the wall: 4 up, 10 across, 4 down.
	if got := grid.PathLength(res.Points); got != 180 {
		t.Errorf("length = %v, want 180", got)
	}
}

func TestRouteExhaustedFallsBack(t *testing.T) {
	m := obstacle.NewMap(grid.RectOf(grid.Cell{I: -5, J: -5}, grid.Cell{I: 15, J: 5}))
	goal := grid.Cell{I: 10, J: 0}
	for _, d := range neighbours {
		m.Block(grid.Cell{I: goal.I + d.I, J: goal.J + d.J})
	}

	start, end := grid.Pt(1.5, 2), grid.Pt(99, -1)
	res := New(nil).Search(start, end, m)
	if res.Outcome != schem.Exhausted {
		t.Fatalf("outcome = %v, want exhausted", res.Outcome)
	}
	if !samePoints(res.Points, []grid.Point{start, end}) {
		t.Errorf("fallback = %v, want verbatim endpoints", res.Points)
	}
	if res.Expanded == 0 {
		t.Error("expected the search to expand cells before giving up")
	}
}

func TestRouteTimeoutFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = time.Millisecond
	r := New(cfg, WithClock(steppingClock(time.Second)))

	start, end := grid.Pt(3, 4), grid.Pt(250, 120)
	for i := 0; i < 3; i++ {
		res := r.Search(start, end, nil)
		if res.Outcome != schem.TimedOut {
			t.Fatalf("outcome = %v, want timeout", res.Outcome)
		}
		if !samePoints(res.Points, []grid.Point{start, end}) {
			t.Fatalf("fallback = %v, want verbatim endpoints", res.Points)
		}
	}
}

func TestRouteWalledGoalFallsBack(t *testing.T) {
	m := obstacle.NewMap(grid.RectOf(grid.Cell{I: -5, J: -5}, grid.Cell{I: 15, J: 5}))
	goal := grid.Cell{I: 10, J: 0}
	for _, d := range neighbours {
		m.Block(grid.Cell{I: goal.I + d.I, J: goal.J + d.J})
	}
	start, end := grid.Pt(0, 0), grid.ToWorld(goal)

	tight := DefaultConfig()
	tight.Budget = time.Nanosecond
	for _, tc := range []struct {
		name string
		r    *Router
		want schem.Outcome
	}{
		{"unbounded", New(nil), schem.Exhausted},
		{"tiny budget", New(tight, WithClock(steppingClock(time.Millisecond))), schem.TimedOut},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				res := tc.r.Search(start, end, m)
				if res.Outcome != tc.want {
					t.Fatalf("outcome = %v, want %v", res.Outcome, tc.want)
				}
				if !samePoints(res.Points, []grid.Point{start, end}) {
					t.Fatalf("fallback = %v, want [start end]", res.Points)
				}
			}
		})
	}
}

func TestRouteDeterministic(t *testing.T) {
	m := obstacle.NewMap(grid.RectOf(grid.Cell{I: -10, J: -10}, grid.Cell{I: 20, J: 10}))
	for i := 2; i <= 8; i++ {
		m.Block(grid.Cell{I: i, J: 2})
	}
	r := New(nil)
	first := r.Route(grid.Pt(0, 0), grid.Pt(100, 50), m)
	for i := 0; i < 5; i++ {
		if got := r.Route(grid.Pt(0, 0), grid.Pt(100, 50), m); !samePoints(got, first) {
			t.Fatalf("run %d: %v differs from %v", i, got, first)
		}
	}
}

func TestRouteWithPolicy(t *testing.T) {
	src := obstacle.Source{
		Wires: [][]grid.Point{{grid.Pt(50, -30), grid.Pt(50, 30)}},
	}
	start, end := grid.Pt(20, 0), grid.Pt(80, 0)

	direct := Route(start, end, obstacle.Components, src)
	if !samePoints(direct, []grid.Point{start, end}) {
		t.Errorf("components policy should ignore wires, got %v", direct)
	}

	around := Route(start, end, obstacle.Wires, src)
	if len(around) <= 2 {
		t.Fatalf("wires policy should detour, got %v", around)
	}
	for _, p := range around[1 : len(around)-1] {
		if p.X == 50 && p.Y >= -30 && p.Y <= 30 {
			t.Errorf("waypoint %v on the blocking wire", p)
		}
	}
}

func TestMetricsRecordOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := New(nil, WithMetrics(m))

	r.Route(grid.Pt(0, 0), grid.Pt(50, 50), nil)
	r.Route(grid.Pt(0, 0), grid.Pt(10, 0), nil)

	if got := testutil.ToFloat64(m.Searches.WithLabelValues("routed")); got != 2 {
		t.Errorf("routed searches = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Searches.WithLabelValues("timeout")); got != 0 {
		t.Errorf("timeout searches = %v, want 0", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Budget: -1, Obstacles: obstacle.Options{Margin: -3}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Budget != DefaultBudget || cfg.Obstacles.Margin != obstacle.DefaultMargin || cfg.Obstacles.MaxCells != obstacle.DefaultMaxCells {
		t.Errorf("unexpected config after Validate: %+v", cfg)
	}
}
