package geom

import "testing"

func TestOppositeEdges(t *testing.T) {
	pairs := map[Edge]Edge{North: South, South: North, East: West, West: East}
	for e, want := range pairs {
		if e.Opposite() != want {
			t.Errorf("%v.Opposite() = %v, want %v", e, e.Opposite(), want)
		}
	}
}

func TestNeighborMatchesOpposite(t *testing.T) {
	c := Cell{X: 3, Y: -2}
	for _, e := range AllEdges {
		n := c.Neighbor(e)
		if n.Neighbor(e.Opposite()) != c {
			t.Errorf("neighbor across %v then %v should return to %v, got %v", e, e.Opposite(), c, n.Neighbor(e.Opposite()))
		}
	}
}

func TestEdgeBitSet(t *testing.T) {
	set := North.With(East)
	if !set.Has(North) || !set.Has(East) {
		t.Fatalf("set should contain North and East, got %v", set)
	}
	if set.Has(South) || set.Has(West) {
		t.Fatalf("set should not contain South or West, got %v", set)
	}
}

func TestCellLessIsLexicographic(t *testing.T) {
	if !(Cell{X: 0, Y: 5}).Less(Cell{X: 1, Y: 0}) {
		t.Fatalf("(0,5) should sort before (1,0)")
	}
	if !(Cell{X: 1, Y: 0}).Less(Cell{X: 1, Y: 1}) {
		t.Fatalf("(1,0) should sort before (1,1)")
	}
	if (Cell{X: 1, Y: 1}).Less(Cell{X: 1, Y: 1}) {
		t.Fatalf("a cell should not sort before itself")
	}
}

func TestManhattanDistance(t *testing.T) {
	a := Cell{X: -2, Y: 3}
	b := Cell{X: 4, Y: -1}
	if d := a.ManhattanDistance(b); d != 10 {
		t.Fatalf("expected distance 10, got %d", d)
	}
	if d := a.ManhattanDistance(a); d != 0 {
		t.Fatalf("expected zero distance to self, got %d", d)
	}
}

func TestBoundsOf(t *testing.T) {
	cells := []Cell{{X: 2, Y: 3}, {X: -1, Y: 0}, {X: 4, Y: 1}}
	r := BoundsOf(cells)
	if r.MinX != -1 || r.MinY != 0 || r.MaxX != 5 || r.MaxY != 4 {
		t.Fatalf("unexpected bounds %+v", r)
	}
	if r.Width() != 6 || r.Height() != 4 {
		t.Fatalf("unexpected extents %dx%d", r.Width(), r.Height())
	}
	if empty := BoundsOf(nil); empty != (Rect{}) {
		t.Fatalf("empty input should yield the zero Rect, got %+v", empty)
	}
}

func TestSortCellsDoesNotMutateInput(t *testing.T) {
	in := []Cell{{X: 2, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	out := SortCells(in)
	if out[0] != (Cell{X: 0, Y: 0}) || out[2] != (Cell{X: 2, Y: 0}) {
		t.Fatalf("unexpected sort order: %v", out)
	}
	if in[0] != (Cell{X: 2, Y: 0}) {
		t.Fatalf("input slice should be left untouched, got %v", in)
	}
}
