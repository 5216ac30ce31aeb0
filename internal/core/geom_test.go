package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{15, 15, true},
		{10, 10, true},  // Top-left corner (inclusive)
		{29, 29, true},  // Just inside bottom-right
		{30, 30, false}, // Bottom-right corner (exclusive)
		{5, 15, false},
		{15, 35, false},
	}

	for _, tc := range tests {
		if result := r.Contains(tc.x, tc.y); result != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
		}
	}
}

func TestRectCenter(t *testing.T) {
	x, y := NewRect(0, 0, 10, 20).Center()
	if x != 5 || y != 10 {
		t.Errorf("Center() = (%d, %d), expected (5, 10)", x, y)
	}
}

func TestBoardLayoutCellsDoNotOverlap(t *testing.T) {
	for _, size := range [][2]int{{80, 30}, {30, 14}} {
		l := NewBoardLayout(size[0], size[1], 4, 2)

		seen := map[[2]int]bool{}
		for r := range 4 {
			for c := range 4 {
				rect := l.CellRect(float64(r), float64(c))
				if rect.X <= l.Origin.X || rect.Right() >= l.Origin.Right() {
					t.Errorf("%v: cell (%d,%d) %+v outside frame %+v", size, r, c, rect, l.Origin)
				}
				for y := rect.Y; y < rect.Bottom(); y++ {
					for x := rect.X; x < rect.Right(); x++ {
						if seen[[2]int{x, y}] {
							t.Fatalf("%v: cell (%d,%d) overlaps at (%d,%d)", size, r, c, x, y)
						}
						seen[[2]int{x, y}] = true
					}
				}
			}
		}
	}
}

func TestBoardLayoutCellAt(t *testing.T) {
	l := NewBoardLayout(80, 30, 4, 2)

	for r := range 4 {
		for c := range 4 {
			cx, cy := l.CellRect(float64(r), float64(c)).Center()
			gr, gc, ok := l.CellAt(cx, cy)
			if !ok || gr != r || gc != c {
				t.Errorf("CellAt(center of %d,%d) = %d,%d,%v", r, c, gr, gc, ok)
			}
		}
	}

	if _, _, ok := l.CellAt(0, 0); ok {
		t.Error("CellAt(0, 0) should be off the board")
	}
}

func TestCellRectInterpolates(t *testing.T) {
	l := NewBoardLayout(80, 30, 4, 2)

	a := l.CellRect(0, 0)
	b := l.CellRect(0, 1)
	mid := l.CellRect(0, 0.5)
	if mid.X <= a.X || mid.X >= b.X {
		t.Errorf("midpoint x = %d, want between %d and %d", mid.X, a.X, b.X)
	}
}

func TestBoardLayoutCompact(t *testing.T) {
	full := NewBoardLayout(80, 30, 4, 2)
	small := full.Compact(80, 2)

	if small.CellH != 1 {
		t.Errorf("CellH = %d, want 1", small.CellH)
	}
	if small.Origin.W >= full.Origin.W || small.Origin.H >= full.Origin.H {
		t.Errorf("compact frame %+v not smaller than %+v", small.Origin, full.Origin)
	}
	if got := NewBoardLayout(30, 10, 4, 2); got.CellH != 1 {
		t.Errorf("small screen CellH = %d, want 1", got.CellH)
	}
}

func TestClampAndRound(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if result := Clamp(tc.val, tc.lo, tc.hi); result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}

	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF should clamp to upper bound")
	}
	if Round(2.5) != 3 || Round(-2.5) != -3 || Round(2.4) != 2 {
		t.Error("Round should round half away from zero")
	}
	if Lerp(2, 6, 0.25) != 3 {
		t.Errorf("Lerp(2, 6, 0.25) = %v, want 3", Lerp(2, 6, 0.25))
	}
	if Abs(-3) != 3 || Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Error("Abs/Min/Max")
	}
}

func TestTileColors(t *testing.T) {
	if TileColors(2, true) != darkTiles[1] {
		t.Error("2 should use the first tile entry")
	}
	if TileColors(1, true) != TileColors(2, true) {
		t.Error("1 should look like 2")
	}
	if TileColors(1<<20, false) != lightTiles[len(lightTiles)-1] {
		t.Error("huge tiles should reuse the last entry")
	}
	if TileColors(0, true) != darkTiles[0] {
		t.Error("0 should be the empty cell style")
	}
}
