package engine

import (
	"math/rand"
	"testing"
)

// tilesFromGrid assigns IDs in row-major order starting at 1.
func tilesFromGrid(g Grid) []Tile {
	var tiles []Tile
	id := TileID(1)
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				continue
			}
			tiles = append(tiles, Tile{ID: id, Value: g[r][c], Row: r, Col: c})
			id++
		}
	}
	return tiles
}

func randomGrid(rng *rand.Rand) Grid {
	var g Grid
	values := []int{0, 0, 0, 2, 2, 4, 4, 8, 16}
	for r := range Size {
		for c := range Size {
			g[r][c] = values[rng.Intn(len(values))]
		}
	}
	return g
}

func TestResolveRowLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    [Size]int
		expected [Size]int
		score    int
	}{
		{"simple merge", [Size]int{2, 2, 0, 0}, [Size]int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", [Size]int{2, 2, 2, 0}, [Size]int{4, 2, 0, 0}, 4},
		{"double merge", [Size]int{2, 2, 2, 2}, [Size]int{4, 4, 0, 0}, 8},
		{"no merge possible", [Size]int{2, 4, 8, 16}, [Size]int{2, 4, 8, 16}, 0},
		{"slide with gap", [Size]int{0, 0, 2, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", [Size]int{2, 0, 0, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"no change needed", [Size]int{4, 2, 0, 0}, [Size]int{4, 2, 0, 0}, 0},
		{"empty row", [Size]int{0, 0, 0, 0}, [Size]int{0, 0, 0, 0}, 0},
		{"single tile", [Size]int{0, 4, 0, 0}, [Size]int{4, 0, 0, 0}, 0},
		{"ones merge", [Size]int{1, 1, 0, 0}, [Size]int{2, 0, 0, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Grid
			g[0] = tt.input
			res := Resolve(tilesFromGrid(g), DirLeft)
			if res.Grid[0] != tt.expected {
				t.Errorf("Resolve(%v, left) = %v, want %v", tt.input, res.Grid[0], tt.expected)
			}
			if res.ScoreDelta != tt.score {
				t.Errorf("Resolve(%v, left) score = %d, want %d", tt.input, res.ScoreDelta, tt.score)
			}
		})
	}
}

func TestResolveDirections(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		board    Grid
		expected Grid
	}{
		{
			name: "left",
			dir:  DirLeft,
			board: Grid{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: Grid{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
		},
		{
			name: "right",
			dir:  DirRight,
			board: Grid{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: Grid{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
		},
		{
			name: "up",
			dir:  DirUp,
			board: Grid{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: Grid{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
		},
		{
			name: "down",
			dir:  DirDown,
			board: Grid{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: Grid{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
		},
		{
			name: "down with gaps between equal tiles",
			dir:  DirDown,
			board: Grid{
				{8, 0, 0, 0},
				{0, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 0, 0, 0},
			},
			expected: Grid{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{16, 0, 0, 0},
				{4, 0, 0, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tilesFromGrid(tt.board), tt.dir)
			if res.Grid != tt.expected {
				t.Errorf("Resolve(%s): got\n%v\nwant\n%v", tt.dir, res.Grid, tt.expected)
			}
			if !res.Changed {
				t.Errorf("Resolve(%s) should indicate board changed", tt.dir)
			}
			if got := GridFromTiles(res.Tiles); got != res.Grid {
				t.Errorf("Resolve(%s) tiles disagree with grid:\n%v\nvs\n%v", tt.dir, got, res.Grid)
			}
		})
	}
}

func TestResolvePairScenario(t *testing.T) {
	g := Grid{{2, 2, 0, 0}}
	res := Resolve(tilesFromGrid(g), DirLeft)

	if res.Grid[0] != [Size]int{4, 0, 0, 0} {
		t.Errorf("row 0 = %v, want [4 0 0 0]", res.Grid[0])
	}
	if res.ScoreDelta != 4 {
		t.Errorf("ScoreDelta = %d, want 4", res.ScoreDelta)
	}
	if len(res.Movements) != 2 {
		t.Fatalf("len(Movements) = %d, want 2", len(res.Movements))
	}

	lead, trail := res.Movements[0], res.Movements[1]
	if lead.TileID != 1 || lead.FromCol != 0 || lead.ToRow != 0 || lead.ToCol != 0 {
		t.Errorf("leading movement = %+v, want tile 1 (0,0)->(0,0)", lead)
	}
	if !lead.Merged || lead.MergedWith != 2 {
		t.Errorf("leading movement should be merged with tile 2, got %+v", lead)
	}
	if trail.TileID != 2 || trail.FromCol != 1 || trail.ToRow != 0 || trail.ToCol != 0 {
		t.Errorf("trailing movement = %+v, want tile 2 (0,1)->(0,0)", trail)
	}
	if trail.Merged || !trail.Absorbed {
		t.Errorf("trailing movement should be absorbed only, got %+v", trail)
	}
	if res.Merges() != 1 {
		t.Errorf("Merges() = %d, want 1", res.Merges())
	}
	if len(res.Tiles) != 1 || res.Tiles[0].ID != 1 || res.Tiles[0].Value != 4 {
		t.Errorf("Tiles = %+v, want single tile 1 with value 4", res.Tiles)
	}
}

func TestResolveNoChange(t *testing.T) {
	board := Grid{
		{4, 2, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 4, 8, 16},
	}
	tiles := tilesFromGrid(board)
	res := Resolve(tiles, DirLeft)

	if res.Changed {
		t.Error("Resolve(left) should not change already left-packed tiles")
	}
	if len(res.Movements) != len(tiles) {
		t.Errorf("len(Movements) = %d, want %d", len(res.Movements), len(tiles))
	}
	for _, m := range res.Movements {
		if m.Moved() {
			t.Errorf("movement %+v should be stationary", m)
		}
	}
	if res.ScoreDelta != 0 {
		t.Errorf("ScoreDelta = %d, want 0", res.ScoreDelta)
	}
}

func TestResolveEmptyBoard(t *testing.T) {
	for _, dir := range Directions {
		res := Resolve(nil, dir)
		if res.Changed || len(res.Movements) != 0 {
			t.Errorf("Resolve(empty, %s) = %+v, want no movements", dir, res)
		}
	}
}

func TestResolveNoopIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 500 {
		tiles := tilesFromGrid(randomGrid(rng))
		for _, dir := range Directions {
			first := Resolve(tiles, dir)
			if first.Changed {
				continue
			}
			second := Resolve(first.Tiles, dir)
			if second.Changed {
				t.Fatalf("second Resolve(%s) changed a stable grid:\n%v", dir, first.Grid)
			}
		}
	}
}

func TestResolveConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for range 500 {
		g := randomGrid(rng)
		tiles := tilesFromGrid(g)
		for _, dir := range Directions {
			res := Resolve(tiles, dir)

			if Sum(res.Grid) != Sum(g) {
				t.Fatalf("Resolve(%s) sum = %d, want %d", dir, Sum(res.Grid), Sum(g))
			}
			if len(res.Tiles) != len(tiles)-res.Merges() {
				t.Fatalf("Resolve(%s) tiles = %d, want %d", dir, len(res.Tiles), len(tiles)-res.Merges())
			}

			mergedValue := 0
			for _, m := range res.Movements {
				if m.Merged {
					mergedValue += m.Value * 2
				}
			}
			if mergedValue != res.ScoreDelta {
				t.Fatalf("Resolve(%s) score = %d, merged value = %d", dir, res.ScoreDelta, mergedValue)
			}
		}
	}
}

func TestResolveSingleMergePerTile(t *testing.T) {
	var g Grid
	g[0] = [Size]int{4, 4, 4, 4}
	res := Resolve(tilesFromGrid(g), DirLeft)

	if res.Grid[0] != [Size]int{8, 8, 0, 0} {
		t.Errorf("row = %v, want [8 8 0 0] (one merge per tile per move)", res.Grid[0])
	}
	if res.ScoreDelta != 16 {
		t.Errorf("score = %d, want 16", res.ScoreDelta)
	}

	rng := rand.New(rand.NewSource(3))
	for range 300 {
		for _, dir := range Directions {
			res := Resolve(tilesFromGrid(randomGrid(rng)), dir)
			seen := make(map[TileID]int)
			for _, m := range res.Movements {
				if m.Merged {
					seen[m.TileID]++
					seen[m.MergedWith]++
				}
			}
			for id, n := range seen {
				if n > 1 {
					t.Fatalf("tile %d took part in %d merges during %s", id, n, dir)
				}
			}
		}
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	tiles := tilesFromGrid(Grid{{2, 2, 4, 4}, {0, 2, 0, 2}})
	orig := CloneTiles(tiles)

	Resolve(tiles, DirRight)

	for i := range tiles {
		if tiles[i] != orig[i] {
			t.Errorf("input tile %d mutated: %+v -> %+v", i, orig[i], tiles[i])
		}
	}
}

func TestPreview(t *testing.T) {
	tiles := tilesFromGrid(Grid{
		{2, 0, 2, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 8},
	})

	got := Preview(tiles, DirLeft)
	want := map[TileID]Cell{
		1: {0, 0},
		2: {0, 0},
		3: {0, 1},
		4: {3, 0},
	}
	for id, cell := range want {
		if got[id] != cell {
			t.Errorf("Preview tile %d = %+v, want %+v", id, got[id], cell)
		}
	}
}

func TestDirectionText(t *testing.T) {
	for _, dir := range Directions {
		text, err := dir.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", dir, err)
		}
		var parsed Direction
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if parsed != dir {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, parsed, dir)
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}
