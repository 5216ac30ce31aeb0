// Package tui runs the game in a terminal with Bubble Tea. It maps keys and
// mouse drags onto the session and draws the board with animated tiles.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives animation and the game's delayed phases.
type TickMsg time.Time

// tickCmd sends a TickMsg after one frame at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
