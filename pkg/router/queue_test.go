package router

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

func (q *frontier) contains(c grid.Cell) bool {
	_, ok := q.byKey[c]
	return ok
}

func (q *frontier) priority(c grid.Cell) (int, int, bool) {
	e, ok := q.byKey[c]
	if !ok {
		return 0, 0, false
	}
	return e.f, e.h, true
}

func TestFrontierDecreaseKey(t *testing.T) {
	q := newFrontier()
	a, b := grid.Cell{I: 1}, grid.Cell{I: 2}

	q.Upsert(a, 10, 4)
	q.Upsert(b, 7, 3)
	q.Upsert(a, 5, 2)

	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2 (no duplicates)", q.Len())
	}
	if f, h, _ := q.priority(a); f != 5 || h != 2 {
		t.Errorf("priority(a) = %d,%d, want 5,2", f, h)
	}

	// A worse priority is ignored.
	q.Upsert(a, 9, 1)
	if f, _, _ := q.priority(a); f != 5 {
		t.Errorf("priority(a) raised to %d", f)
	}

	if got := q.Pop(); got != a {
		t.Errorf("first pop = %v, want %v", got, a)
	}
	if q.contains(a) {
		t.Error("popped cell still indexed")
	}
	if got := q.Pop(); got != b {
		t.Errorf("second pop = %v, want %v", got, b)
	}
}

func TestFrontierTieBreak(t *testing.T) {
	q := newFrontier()
	first := grid.Cell{I: 1}
	second := grid.Cell{I: 2}
	lowH := grid.Cell{I: 3}

	q.Upsert(first, 6, 3)
	q.Upsert(second, 6, 3)
	q.Upsert(lowH, 6, 1)

	want := []grid.Cell{lowH, first, second}
	for i, w := range want {
		if got := q.Pop(); got != w {
			t.Errorf("pop %d = %v, want %v", i, got, w)
		}
	}
}

func TestFrontierOrdering(t *testing.T) {
	q := newFrontier()
	for i, f := range []int{9, 3, 7, 1, 8, 2, 6} {
		q.Upsert(grid.Cell{I: i}, f, 0)
	}
	last := -1
	for q.Len() > 0 {
		c := q.Pop()
		f := []int{9, 3, 7, 1, 8, 2, 6}[c.I]
		if f < last {
			t.Fatalf("popped f=%d after f=%d", f, last)
		}
		last = f
	}
}

func TestCornersMergesCollinear(t *testing.T) {
	cells := []grid.Cell{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {3, 2}}
	got := corners(cells)
	want := []grid.Cell{{0, 0}, {2, 0}, {2, 2}, {3, 2}}
	if len(got) != len(want) {
		t.Fatalf("corners = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("corners[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
