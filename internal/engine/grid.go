package engine

import (
	"fmt"
	"strings"
)

// Size is the board dimension.
const Size = 4

// Grid is the cell-value view of the board. 0 means empty.
type Grid [Size][Size]int

// GridFromTiles builds the grid for a tile set. Tiles outside the board are
// ignored; callers validate tile sets before they reach the engine.
func GridFromTiles(tiles []Tile) Grid {
	var g Grid
	for _, t := range tiles {
		if !t.Cell().InBounds() {
			continue
		}
		g[t.Row][t.Col] = t.Value
	}
	return g
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(g Grid) int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] > maxVal {
				maxVal = g[r][c]
			}
		}
	}
	return maxVal
}

// Sum returns the total of all cell values.
func Sum(g Grid) int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// String renders the grid as rows of right-aligned numbers, "." for empty.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == 0 {
				sb.WriteString(fmt.Sprintf("%5s", "."))
				continue
			}
			sb.WriteString(fmt.Sprintf("%5d", g[r][c]))
		}
	}
	return sb.String()
}
