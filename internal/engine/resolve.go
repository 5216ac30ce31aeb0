package engine

import "sort"

// Movement describes where a single tile travels during a move.
//
// When two tiles merge, the leading tile (closest to the target edge) carries
// Merged and MergedWith; the trailing tile is Absorbed and slides into the same
// cell before it disappears.
type Movement struct {
	TileID     TileID `json:"tile_id"`
	FromRow    int    `json:"from_row"`
	FromCol    int    `json:"from_col"`
	ToRow      int    `json:"to_row"`
	ToCol      int    `json:"to_col"`
	Value      int    `json:"value"` // Value before the move
	Merged     bool   `json:"merged,omitempty"`
	MergedWith TileID `json:"merged_with,omitempty"`
	Absorbed   bool   `json:"absorbed,omitempty"`
}

// Moved reports whether the tile changes cell.
func (m Movement) Moved() bool {
	return m.FromRow != m.ToRow || m.FromCol != m.ToCol
}

// Result is the outcome of resolving one move.
type Result struct {
	Direction  Direction
	Movements  []Movement
	ScoreDelta int
	Tiles      []Tile // Surviving tiles after the move, ordered by ID
	Grid       Grid
	Changed    bool
}

// Merges returns the number of merge events in the result.
func (r Result) Merges() int {
	n := 0
	for _, m := range r.Movements {
		if m.Merged {
			n++
		}
	}
	return n
}

// Resolve computes a move without mutating its input.
//
// Each row (or column for vertical moves) is walked starting with the tile
// nearest the target edge. A tile merges with the next one when the values
// match and neither has merged during this move; otherwise it takes the next
// free slot. Every tile gets a Movement, including tiles that stay put.
func Resolve(tiles []Tile, dir Direction) Result {
	res := Result{Direction: dir}
	if dir == DirNone {
		res.Tiles = sortedByID(CloneTiles(tiles))
		res.Grid = GridFromTiles(res.Tiles)
		return res
	}

	before := GridFromTiles(tiles)
	merged := make(map[TileID]bool)
	res.Movements = make([]Movement, 0, len(tiles))
	res.Tiles = make([]Tile, 0, len(tiles))

	for line := range Size {
		lineTiles := collectLine(tiles, dir, line)

		slot := 0
		for i := 0; i < len(lineTiles); i++ {
			cur := lineTiles[i]
			to := slotCell(dir, line, slot)

			if i+1 < len(lineTiles) {
				next := lineTiles[i+1]
				if next.Value == cur.Value && !merged[cur.ID] && !merged[next.ID] {
					merged[cur.ID] = true
					merged[next.ID] = true

					res.Movements = append(res.Movements,
						movementFor(cur, to, true, next.ID, false),
						movementFor(next, to, false, 0, true),
					)
					res.ScoreDelta += cur.Value * 2
					res.Tiles = append(res.Tiles, Tile{ID: cur.ID, Value: cur.Value * 2, Row: to.Row, Col: to.Col})

					i++ // Skip the absorbed tile
					slot++
					continue
				}
			}

			res.Movements = append(res.Movements, movementFor(cur, to, false, 0, false))
			res.Tiles = append(res.Tiles, Tile{ID: cur.ID, Value: cur.Value, Row: to.Row, Col: to.Col})
			slot++
		}
	}

	res.Tiles = sortedByID(res.Tiles)
	res.Grid = gridFromMovements(res.Movements, merged)
	res.Changed = res.Grid != before
	return res
}

// Preview returns the cell each tile would occupy after a move in dir.
// Absorbed tiles map to the cell of the tile they merge into.
func Preview(tiles []Tile, dir Direction) map[TileID]Cell {
	res := Resolve(tiles, dir)
	out := make(map[TileID]Cell, len(tiles))
	for _, t := range tiles {
		out[t.ID] = t.Cell()
	}
	for _, m := range res.Movements {
		out[m.TileID] = Cell{Row: m.ToRow, Col: m.ToCol}
	}
	return out
}

// collectLine returns the tiles of one row or column ordered by distance
// from the target edge.
func collectLine(tiles []Tile, dir Direction, line int) []Tile {
	var out []Tile
	for _, t := range tiles {
		if !t.Cell().InBounds() {
			continue
		}
		if dir.Horizontal() && t.Row == line {
			out = append(out, t)
		} else if !dir.Horizontal() && t.Col == line {
			out = append(out, t)
		}
	}

	pos := func(t Tile) int {
		if dir.Horizontal() {
			return t.Col
		}
		return t.Row
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir.towardStart() {
			return pos(out[i]) < pos(out[j])
		}
		return pos(out[i]) > pos(out[j])
	})
	return out
}

// slotCell maps the n-th compacted slot of a line to a board cell.
func slotCell(dir Direction, line, slot int) Cell {
	idx := slot
	if !dir.towardStart() {
		idx = Size - 1 - slot
	}
	if dir.Horizontal() {
		return Cell{Row: line, Col: idx}
	}
	return Cell{Row: idx, Col: line}
}

func movementFor(t Tile, to Cell, merged bool, with TileID, absorbed bool) Movement {
	return Movement{
		TileID:     t.ID,
		FromRow:    t.Row,
		FromCol:    t.Col,
		ToRow:      to.Row,
		ToCol:      to.Col,
		Value:      t.Value,
		Merged:     merged,
		MergedWith: with,
		Absorbed:   absorbed,
	}
}

// gridFromMovements rebuilds the post-move grid from the movement list.
func gridFromMovements(moves []Movement, merged map[TileID]bool) Grid {
	var g Grid
	for _, m := range moves {
		if m.Absorbed {
			continue
		}
		v := m.Value
		if m.Merged && merged[m.TileID] {
			v *= 2
		}
		g[m.ToRow][m.ToCol] = v
	}
	return g
}

func sortedByID(tiles []Tile) []Tile {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].ID < tiles[j].ID })
	return tiles
}
