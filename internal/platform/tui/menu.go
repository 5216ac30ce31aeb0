package tui

import (
	"strings"

	"github.com/vovakirdan/dark2048/internal/core"
)

// MenuChoice is an entry of the in-game menu.
type MenuChoice int

const (
	MenuResume MenuChoice = iota
	MenuNewGame
	MenuUndo
	MenuScores
	MenuQuit
)

var menuLabels = []string{
	MenuResume:  "Resume",
	MenuNewGame: "New game",
	MenuUndo:    "Undo",
	MenuScores:  "Scores",
	MenuQuit:    "Quit",
}

// String returns the label of the choice.
func (c MenuChoice) String() string {
	if c < 0 || int(c) >= len(menuLabels) {
		return "Unknown"
	}
	return menuLabels[c]
}

// gameMenu is the overlay opened with the menu key or a two-finger swipe.
type gameMenu struct {
	cursor  int
	canUndo bool
}

func (m *gameMenu) reset(canUndo bool) {
	m.cursor = 0
	m.canUndo = canUndo
}

// handle applies a navigation action. It returns the chosen entry and
// whether one was chosen.
func (m *gameMenu) handle(a core.Action) (MenuChoice, bool) {
	switch a {
	case core.ActionUp:
		m.cursor = (m.cursor + len(menuLabels) - 1) % len(menuLabels)
	case core.ActionDown:
		m.cursor = (m.cursor + 1) % len(menuLabels)
	case core.ActionConfirm, core.ActionRight:
		return MenuChoice(m.cursor), true
	case core.ActionMenu, core.ActionLeft:
		return MenuResume, true
	}
	return MenuResume, false
}

// draw puts the menu box in the middle of the board.
func (m *gameMenu) draw(s *core.Screen, board core.Rect) {
	w := 18
	h := len(menuLabels) + 2
	cx, cy := board.Center()
	box := core.NewRect(cx-w/2, core.Max(0, cy-h/2), w, h)

	s.FillRect(box, ' ', core.ColorWhite, core.ColorBlack)
	s.DrawBox(box, core.ColorOrange)

	for i, label := range menuLabels {
		fg := core.ColorWhite
		if MenuChoice(i) == MenuUndo && !m.canUndo {
			fg = core.ColorDim
		}
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
			fg = core.ColorYellow
		}
		line := padRight(prefix+label, w-4)
		s.DrawStyledText(box.X+2, box.Y+1+i, line, fg, core.ColorBlack)
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

func padRight(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}
