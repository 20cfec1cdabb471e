package grid

import (
	"testing"
)

func TestToCellRoundsToNearest(t *testing.T) {
	tests := []struct {
		in   Point
		want Cell
	}{
		{Pt(0, 0), Cell{0, 0}},
		{Pt(14.9, -4.9), Cell{1, 0}},
		{Pt(15, 25), Cell{2, 3}},
		{Pt(-15, -25), Cell{-2, -3}},
		{Pt(120, 80), Cell{12, 8}},
	}

	for _, tt := range tests {
		if got := ToCell(tt.in); got != tt.want {
			t.Errorf("ToCell(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuantizationIdempotent(t *testing.T) {
	points := []Point{
		Pt(0, 0), Pt(3.3, 7.7), Pt(-12.5, 99.99), Pt(1e4+0.4, -1e4-0.6), Pt(5, 5), Pt(-5, -5),
	}

	for _, p := range points {
		once := ToWorld(ToCell(p))
		twice := ToWorld(ToCell(once))
		if once != twice {
			t.Errorf("quantizing %v: %v then %v", p, once, twice)
		}
		if Snap(once) != once {
			t.Errorf("Snap(%v) moved a grid point", once)
		}
	}

	for i := -50; i <= 50; i += 7 {
		c := Cell{I: i, J: -i}
		if got := ToCell(ToWorld(c)); got != c {
			t.Errorf("ToCell(ToWorld(%v)) = %v", c, got)
		}
	}
}

func TestLineInclusive(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want int
	}{
		{"single", Cell{3, 3}, Cell{3, 3}, 1},
		{"row", Cell{0, 0}, Cell{5, 0}, 6},
		{"row reversed", Cell{5, 2}, Cell{-1, 2}, 7},
		{"column", Cell{1, -2}, Cell{1, 2}, 5},
		{"diagonal", Cell{0, 0}, Cell{4, 4}, 5},
		{"steep", Cell{0, 0}, Cell{2, 7}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := Line(tt.a, tt.b)
			if len(cells) != tt.want {
				t.Fatalf("got %d cells, want %d: %v", len(cells), tt.want, cells)
			}
			if cells[0] != tt.a || cells[len(cells)-1] != tt.b {
				t.Errorf("line does not span endpoints: %v", cells)
			}
			for i := 1; i < len(cells); i++ {
				di, dj := abs(cells[i].I-cells[i-1].I), abs(cells[i].J-cells[i-1].J)
				if di > 1 || dj > 1 || di+dj == 0 {
					t.Errorf("gap between %v and %v", cells[i-1], cells[i])
				}
			}
		})
	}
}

func TestRectOperations(t *testing.T) {
	r := RectOf(Cell{2, 0}, Cell{8, 0})
	if r.Width() != 7 || r.Height() != 1 {
		t.Fatalf("RectOf size = %dx%d", r.Width(), r.Height())
	}

	g := r.Grow(2)
	if g.Min != (Cell{0, -2}) || g.Max != (Cell{10, 2}) {
		t.Errorf("Grow = %v", g)
	}
	if !g.ContainsRect(r) {
		t.Error("grown rect should contain original")
	}
	if !g.Intersects(RectOf(Cell{10, 2}, Cell{20, 20})) {
		t.Error("corner-touching rects should intersect")
	}
	if g.Intersects(RectOf(Cell{11, 0})) {
		t.Error("disjoint rects should not intersect")
	}

	var empty Rect = RectOf()
	if !empty.Empty() || empty.Area() != 0 {
		t.Errorf("RectOf() = %v, want empty", empty)
	}
	if got := empty.Union(r); got != r {
		t.Errorf("empty union = %v", got)
	}
}

func TestRectFCellsUsesCellCentres(t *testing.T) {
	body := Around(Pt(0, 0), 22.5, 7.5)
	cells := body.Cells()
	if cells.Min != (Cell{-2, 0}) || cells.Max != (Cell{2, 0}) {
		t.Fatalf("footprint cells = %v", cells)
	}

	thin := Around(Pt(5, 5), 2, 2)
	if !thin.Cells().Empty() {
		t.Errorf("rect without a grid intersection covered %v", thin.Cells())
	}
}

func TestExtentClamp(t *testing.T) {
	tests := []struct {
		in   Point
		want Point
	}{
		{Pt(29, 11), Pt(20, 20)},
		{Pt(31, 9), Pt(40, 0)},
		{Pt(-50, -50), Pt(0, 0)},
		{Pt(1000, 395), Pt(380, 380)},
	}
	for _, tt := range tests {
		if got := DefaultExtent.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := Unbounded.Clamp(Pt(-1234, 5678)); got != Pt(-1230, 5680) {
		t.Errorf("Unbounded.Clamp = %v", got)
	}
}

func TestPathLength(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(30, 0), Pt(30, 40)}
	if got := PathLength(pts); got != 70 {
		t.Errorf("PathLength = %v, want 70", got)
	}
	if PathLength(nil) != 0 {
		t.Error("empty path should have zero length")
	}
}
