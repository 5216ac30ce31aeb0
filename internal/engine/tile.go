// Package engine implements the pure 2048 rules: the tile model, move
// resolution, tile spawning and game-over detection. It has no knowledge of
// rendering, timing or persistence.
package engine

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four move directions in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase name used in logs and saved games.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return ""
	}
}

// Horizontal reports whether the move runs along rows.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// towardStart reports whether tiles travel toward index 0 of their line.
func (d Direction) towardStart() bool {
	return d == DirLeft || d == DirUp
}

// ParseDirection converts a direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "":
		return DirNone, nil
	default:
		return DirNone, fmt.Errorf("engine: unknown direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TileID identifies a tile for its whole lifetime. IDs are handed out by the
// game at spawn time and never reused within a game.
type TileID int

// Tile is a single numbered tile on the board.
type Tile struct {
	ID    TileID `json:"id"`
	Value int    `json:"value"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
}

// Cell is a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell returns the tile's position.
func (t Tile) Cell() Cell {
	return Cell{Row: t.Row, Col: t.Col}
}

// InBounds reports whether the cell lies on the board.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// CloneTiles returns an independent copy of a tile slice.
func CloneTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}
