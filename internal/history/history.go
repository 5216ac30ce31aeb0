// Package history keeps the stack of pre-move snapshots and enforces the undo
// budget.
package history

import (
	"errors"

	"github.com/vovakirdan/dark2048/internal/engine"
)

// Policy is the number of undos allowed per game.
type Policy int

const (
	Unlimited Policy = -1
	Disabled  Policy = 0
	Single    Policy = 1
)

// String returns the policy as written in config files.
func (p Policy) String() string {
	switch p {
	case Unlimited:
		return "unlimited"
	case Disabled:
		return "0"
	case Single:
		return "1"
	default:
		return "invalid"
	}
}

var (
	ErrNoHistory     = errors.New("history: nothing to undo")
	ErrUndoDisabled  = errors.New("history: undo is disabled")
	ErrUndoExhausted = errors.New("history: undo already used this game")
)

// Entry is the board as it was right before a move.
type Entry struct {
	Grid      engine.Grid      `json:"grid"`
	Score     int              `json:"score"`
	Tiles     []engine.Tile    `json:"tiles"`
	Direction engine.Direction `json:"last_direction"`
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Tiles = engine.CloneTiles(e.Tiles)
	return e
}

// Manager is the undo stack of one game.
type Manager struct {
	policy     Policy
	entries    []Entry
	used       int // Undos charged against the budget
	total      int // Undos performed this game
	lastUndone engine.Direction
}

// New creates an empty history with the given undo policy.
func New(policy Policy) *Manager {
	return &Manager{policy: policy}
}

// Policy returns the undo policy.
func (m *Manager) Policy() Policy {
	return m.policy
}

// Len returns the number of recorded snapshots.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Used returns how many undos count against the budget.
func (m *Manager) Used() int {
	return m.used
}

// Total returns the number of undos performed this game.
func (m *Manager) Total() int {
	return m.total
}

// LastUndone returns the direction of the most recently undone move, or
// DirNone once a different move has been played.
func (m *Manager) LastUndone() engine.Direction {
	return m.lastUndone
}

// RecordBeforeMove pushes a snapshot taken before a move is attempted.
func (m *Manager) RecordBeforeMove(e Entry) {
	m.entries = append(m.entries, e.Clone())
}

// DiscardLast drops the most recent snapshot. Used when the attempted move
// turned out not to change the board.
func (m *Manager) DiscardLast() (Entry, bool) {
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	last := m.entries[len(m.entries)-1]
	m.entries = m.entries[:len(m.entries)-1]
	return last, true
}

// NoteMove records that a move in dir changed the board. Repeating the
// direction that was just undone gives the undo back.
// Returns true if the budget was restored.
func (m *Manager) NoteMove(dir engine.Direction) bool {
	restored := false
	if m.lastUndone != engine.DirNone && m.lastUndone == dir && m.used > 0 {
		m.used--
		restored = true
	}
	m.lastUndone = engine.DirNone
	return restored
}

// CanUndo reports why an undo would be refused, or nil if it is allowed.
// A single-undo budget does not apply once the game is over.
func (m *Manager) CanUndo(terminal bool) error {
	if len(m.entries) == 0 {
		return ErrNoHistory
	}
	switch {
	case m.policy == Disabled:
		return ErrUndoDisabled
	case m.policy == Unlimited:
		return nil
	case m.used >= int(m.policy) && !terminal:
		return ErrUndoExhausted
	}
	return nil
}

// PopForUndo removes and returns the latest snapshot if the policy allows it.
func (m *Manager) PopForUndo(terminal bool) (Entry, error) {
	if err := m.CanUndo(terminal); err != nil {
		return Entry{}, err
	}

	e, _ := m.DiscardLast()
	m.used++
	m.total++
	m.lastUndone = e.Direction
	return e, nil
}

// ResetBudget clears the used-undo count. Called when the game ends so the
// player can step back from the game-over board.
func (m *Manager) ResetBudget() {
	m.used = 0
}

// Clear empties the stack and resets all counters for a new game.
func (m *Manager) Clear() {
	m.entries = nil
	m.used = 0
	m.total = 0
	m.lastUndone = engine.DirNone
}

// Entries returns a copy of the stack, oldest first.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Clone()
	}
	return out
}

// Restore replaces the stack and counters, e.g. from a saved game.
func (m *Manager) Restore(entries []Entry, used, total int, lastUndone engine.Direction) {
	m.entries = make([]Entry, 0, len(entries))
	for _, e := range entries {
		m.entries = append(m.entries, e.Clone())
	}
	m.used = used
	m.total = total
	m.lastUndone = lastUndone
}
