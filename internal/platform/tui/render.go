package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dark2048/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache holds one lipgloss style per color pair seen so far.
type styleCache map[colorPair]lipgloss.Style

func (c styleCache) style(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if s, ok := c[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(int(fg))))
	}
	if bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(strconv.Itoa(int(bg))))
	}
	c[key] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors share one styled run.
func RenderScreen(s *core.Screen) string {
	styles := styleCache{}
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != first.FG || cell.BG != first.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if first.FG == core.ColorDefault && first.BG == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.style(first.FG, first.BG).Render(run.String()))
		}
	}
	return sb.String()
}
