package core

// Action represents a semantic player action, abstracted from physical key
// presses and pointer gestures.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionUndo           // U, Backspace
	ActionNewGame        // N, R
	ActionMenu           // M, Escape
	ActionHelp           // ?
	ActionConfirm        // Enter
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionNewGame:
		return "NewGame"
	case ActionMenu:
		return "Menu"
	case ActionHelp:
		return "Help"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action slides the tiles.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}
