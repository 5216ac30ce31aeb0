package history

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/dark2048/internal/engine"
)

func entry(score int, dir engine.Direction) Entry {
	tiles := []engine.Tile{{ID: 1, Value: 2, Row: 0, Col: 0}}
	return Entry{
		Grid:      engine.GridFromTiles(tiles),
		Score:     score,
		Tiles:     tiles,
		Direction: dir,
	}
}

func TestDiscardLast(t *testing.T) {
	m := New(Single)
	m.RecordBeforeMove(entry(0, engine.DirLeft))
	m.RecordBeforeMove(entry(4, engine.DirUp))

	e, ok := m.DiscardLast()
	if !ok || e.Score != 4 {
		t.Errorf("DiscardLast() = %+v, %v; want score 4", e, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if m.Used() != 0 {
		t.Errorf("DiscardLast should not charge the budget, Used() = %d", m.Used())
	}
}

func TestSingleUndoBudget(t *testing.T) {
	m := New(Single)
	m.RecordBeforeMove(entry(0, engine.DirLeft))
	m.RecordBeforeMove(entry(8, engine.DirUp))

	e, err := m.PopForUndo(false)
	if err != nil {
		t.Fatalf("first PopForUndo failed: %v", err)
	}
	if e.Score != 8 || e.Direction != engine.DirUp {
		t.Errorf("PopForUndo() = %+v, want state before up", e)
	}

	if _, err := m.PopForUndo(false); !errors.Is(err, ErrUndoExhausted) {
		t.Errorf("second PopForUndo error = %v, want ErrUndoExhausted", err)
	}
	if m.Len() != 1 {
		t.Errorf("refused undo should not pop, Len() = %d", m.Len())
	}

	// Allowed again once the game is over
	if _, err := m.PopForUndo(true); err != nil {
		t.Errorf("PopForUndo on terminal board failed: %v", err)
	}
}

func TestRedoRestoresBudget(t *testing.T) {
	m := New(Single)
	m.RecordBeforeMove(entry(0, engine.DirLeft))
	if _, err := m.PopForUndo(false); err != nil {
		t.Fatalf("PopForUndo failed: %v", err)
	}

	// A different direction does not give the undo back
	if m.NoteMove(engine.DirRight) {
		t.Error("NoteMove(right) should not restore the budget after undoing left")
	}
	if m.Used() != 1 {
		t.Errorf("Used() = %d, want 1", m.Used())
	}

	m.RecordBeforeMove(entry(0, engine.DirDown))
	m.ResetBudget()
	if _, err := m.PopForUndo(false); err != nil {
		t.Fatalf("PopForUndo failed: %v", err)
	}
	if !m.NoteMove(engine.DirDown) {
		t.Error("repeating the undone direction should restore the budget")
	}
	if m.Used() != 0 {
		t.Errorf("Used() = %d, want 0", m.Used())
	}
	if m.Total() != 2 {
		t.Errorf("Total() = %d, want 2", m.Total())
	}
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		pops    int
		wantErr error
	}{
		{"disabled", Disabled, 0, ErrUndoDisabled},
		{"single second pop", Single, 1, ErrUndoExhausted},
		{"unlimited", Unlimited, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.policy)
			for i := range 5 {
				m.RecordBeforeMove(entry(i, engine.DirLeft))
			}
			for range tt.pops {
				if _, err := m.PopForUndo(false); err != nil {
					t.Fatalf("PopForUndo failed early: %v", err)
				}
			}
			_, err := m.PopForUndo(false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PopForUndo error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmptyHistory(t *testing.T) {
	m := New(Unlimited)
	if _, err := m.PopForUndo(true); !errors.Is(err, ErrNoHistory) {
		t.Errorf("PopForUndo on empty stack = %v, want ErrNoHistory", err)
	}
}

func TestRecordCopiesTiles(t *testing.T) {
	m := New(Unlimited)
	e := entry(0, engine.DirLeft)
	m.RecordBeforeMove(e)
	e.Tiles[0].Value = 1024

	got, _ := m.PopForUndo(false)
	if got.Tiles[0].Value != 2 {
		t.Errorf("recorded entry changed with caller's slice: %+v", got.Tiles[0])
	}
}

func TestEntryJSONRoundTrip(t *testing.T) {
	e := Entry{
		Score: 36,
		Tiles: []engine.Tile{
			{ID: 3, Value: 4, Row: 0, Col: 1},
			{ID: 9, Value: 32, Row: 3, Col: 3},
		},
		Direction: engine.DirRight,
	}
	e.Grid = engine.GridFromTiles(e.Tiles)

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var got Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.Grid != e.Grid || got.Score != e.Score || got.Direction != e.Direction {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
	for i := range e.Tiles {
		if got.Tiles[i] != e.Tiles[i] {
			t.Errorf("tile %d = %+v, want %+v", i, got.Tiles[i], e.Tiles[i])
		}
	}
}
