package engine

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(g Grid) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two adjacent cells hold the same
// nonzero value.
func HasPossibleMerge(g Grid) bool {
	for r := range Size {
		for c := range Size {
			val := g[r][c]
			if val == 0 {
				continue
			}
			if c < Size-1 && g[r][c+1] == val {
				return true
			}
			if r < Size-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether no move can change the grid: no empty cell and
// no adjacent equal pair.
func IsTerminal(g Grid) bool {
	return !HasEmptyCell(g) && !HasPossibleMerge(g)
}
