package core

// Color is an ANSI 256-color code. ColorDefault leaves the terminal's own
// color in place.
type Color int16

const ColorDefault Color = -1

// Named ANSI colors used by the interface.
const (
	ColorBlack  Color = 0
	ColorRed    Color = 1
	ColorGreen  Color = 2
	ColorYellow Color = 3
	ColorWhite  Color = 7
	ColorGray   Color = 245
	ColorDim    Color = 240
	ColorOrange Color = 208
)

// TileStyle is the look of one tile value.
type TileStyle struct {
	FG, BG Color
}

// Tile palettes indexed by log2(value). Values above the table reuse the
// last entry.
var (
	darkTiles = []TileStyle{
		{ColorGray, 236}, // empty
		{252, 239},       // 2 (and 1)
		{252, 95},        // 4
		{231, 130},       // 8
		{231, 166},       // 16
		{231, 202},       // 32
		{231, 160},       // 64
		{231, 136},       // 128
		{231, 142},       // 256
		{231, 178},       // 512
		{231, 172},       // 1024
		{231, 214},       // 2048
		{231, 54},        // 4096+
	}
	lightTiles = []TileStyle{
		{ColorDim, 250},
		{238, 255},
		{238, 230},
		{231, 215},
		{231, 209},
		{231, 203},
		{231, 196},
		{231, 222},
		{231, 221},
		{231, 220},
		{231, 214},
		{231, 226},
		{231, 93},
	}
)

// TileColors returns the style for a tile value. Value 0 is an empty cell.
func TileColors(value int, dark bool) TileStyle {
	palette := lightTiles
	if dark {
		palette = darkTiles
	}

	idx := 0
	for v := value; v > 1; v >>= 1 {
		idx++
	}
	if value == 1 {
		idx = 1
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}
