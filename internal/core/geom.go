// Package core provides the terminal drawing primitives for the game: a
// colored cell buffer, colors and board geometry. It has no Bubble Tea
// dependency so rendering code stays testable.
package core

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// BoardLayout places a square board of cells on the screen.
type BoardLayout struct {
	Origin Rect // Area covered by the board including its frame
	CellW  int
	CellH  int
	Gap    int // Columns between cells; rows use half of it, at least 0
	Size   int
}

// NewBoardLayout centers a size×size board inside a screen of w×h cells,
// leaving top rows for the header.
func NewBoardLayout(w, h, size, top int) BoardLayout {
	l := BoardLayout{CellW: 7, CellH: 3, Gap: 1, Size: size}

	if w < l.width()+2 || h-top < l.height()+2 {
		return l.Compact(w, top)
	}
	return l.place(w, top)
}

// Compact returns the layout with single-row cells, centered in width w.
func (l BoardLayout) Compact(w, top int) BoardLayout {
	l.CellW, l.CellH, l.Gap = 5, 1, 1
	return l.place(w, top)
}

func (l BoardLayout) place(w, top int) BoardLayout {
	bw, bh := l.width()+2, l.height()+2
	l.Origin = NewRect(Max(0, (w-bw)/2), top, bw, bh)
	return l
}

func (l BoardLayout) width() int {
	return l.Size*l.CellW + (l.Size-1)*l.Gap
}

func (l BoardLayout) height() int {
	return l.Size*l.CellH + (l.Size-1)*l.rowGap()
}

func (l BoardLayout) rowGap() int {
	if l.CellH == 1 {
		return 0
	}
	return Max(0, l.Gap/2+l.Gap%2)
}

// CellRect returns the screen rectangle of a board cell at a fractional
// position, used while tiles slide between cells.
func (l BoardLayout) CellRect(row, col float64) Rect {
	strideX := float64(l.CellW + l.Gap)
	strideY := float64(l.CellH + l.rowGap())
	x := l.Origin.X + 1 + Round(col*strideX)
	y := l.Origin.Y + 1 + Round(row*strideY)
	return NewRect(x, y, l.CellW, l.CellH)
}

// CellAt returns the board cell under screen position (x, y).
func (l BoardLayout) CellAt(x, y int) (row, col int, ok bool) {
	for r := range l.Size {
		for c := range l.Size {
			if l.CellRect(float64(r), float64(c)).Contains(x, y) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Round rounds half away from zero.
func Round(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
