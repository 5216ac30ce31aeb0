package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dark2048/internal/core"
	"github.com/vovakirdan/dark2048/internal/engine"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey('w'), core.ActionUp},
		{"j", runeKey('j'), core.ActionDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runeKey('d'), core.ActionRight},
		{"u", runeKey('u'), core.ActionUndo},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.ActionUndo},
		{"n", runeKey('n'), core.ActionNewGame},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionMenu},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"help", runeKey('?'), core.ActionHelp},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestDirectionFor(t *testing.T) {
	tests := []struct {
		action core.Action
		want   engine.Direction
	}{
		{core.ActionUp, engine.DirUp},
		{core.ActionDown, engine.DirDown},
		{core.ActionLeft, engine.DirLeft},
		{core.ActionRight, engine.DirRight},
		{core.ActionUndo, engine.DirNone},
	}
	for _, tt := range tests {
		if got := directionFor(tt.action); got != tt.want {
			t.Errorf("directionFor(%v) = %v, want %v", tt.action, got, tt.want)
		}
	}
}
