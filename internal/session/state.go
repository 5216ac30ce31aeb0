package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/dark2048/internal/engine"
	"github.com/vovakirdan/dark2048/internal/history"
)

// ErrCorruptState marks persisted state that failed validation.
var ErrCorruptState = errors.New("session: corrupt persisted state")

// SavedState is the serializable form of a running game.
type SavedState struct {
	GameID     string           `json:"game_id"`
	Grid       engine.Grid      `json:"grid"`
	Score      int              `json:"score"`
	Tiles      []engine.Tile    `json:"tiles"`
	NextTileID engine.TileID    `json:"tile_id"`
	History    []history.Entry  `json:"history"`
	UndoCount  int              `json:"undo_count"`
	UndosUsed  int              `json:"undos_used"`
	LastUndone engine.Direction `json:"last_undone"`
	Over       bool             `json:"over"`
	StartedAt  time.Time        `json:"started_at"`
}

// Snapshot returns the current game in serializable form.
func (g *Game) Snapshot() SavedState {
	return SavedState{
		GameID:     g.id,
		Grid:       g.grid,
		Score:      g.score,
		Tiles:      g.Tiles(),
		NextTileID: g.nextID,
		History:    g.history.Entries(),
		UndoCount:  g.history.Total(),
		UndosUsed:  g.history.Used(),
		LastUndone: g.history.LastUndone(),
		Over:       g.over,
		StartedAt:  g.startedAt,
	}
}

// Validate checks the structural invariants of a saved game: tiles lie on the
// board, never share a cell, carry distinct IDs below the ID counter and
// agree with the stored grid. History entries are checked the same way.
func (s SavedState) Validate() error {
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrCorruptState, s.Score)
	}
	if s.UndoCount < 0 || s.UndosUsed < 0 {
		return fmt.Errorf("%w: negative undo counters", ErrCorruptState)
	}
	if len(s.Tiles) == 0 {
		return fmt.Errorf("%w: no tiles", ErrCorruptState)
	}
	if err := validateBoard(s.Tiles, s.Grid, s.NextTileID); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	for i, e := range s.History {
		if e.Score < 0 {
			return fmt.Errorf("%w: history[%d]: negative score", ErrCorruptState, i)
		}
		if err := validateBoard(e.Tiles, e.Grid, s.NextTileID); err != nil {
			return fmt.Errorf("%w: history[%d]: %w", ErrCorruptState, i, err)
		}
	}
	return nil
}

func validateBoard(tiles []engine.Tile, grid engine.Grid, nextID engine.TileID) error {
	seenID := make(map[engine.TileID]bool, len(tiles))
	var occupied [engine.Size][engine.Size]bool

	for _, t := range tiles {
		if !t.Cell().InBounds() {
			return fmt.Errorf("tile %d out of bounds at (%d,%d)", t.ID, t.Row, t.Col)
		}
		if t.Value < 1 {
			return fmt.Errorf("tile %d has value %d", t.ID, t.Value)
		}
		if t.ID < 1 || t.ID >= nextID {
			return fmt.Errorf("tile id %d outside [1,%d)", t.ID, nextID)
		}
		if seenID[t.ID] {
			return fmt.Errorf("duplicate tile id %d", t.ID)
		}
		seenID[t.ID] = true
		if occupied[t.Row][t.Col] {
			return fmt.Errorf("two tiles at (%d,%d)", t.Row, t.Col)
		}
		occupied[t.Row][t.Col] = true
	}

	if engine.GridFromTiles(tiles) != grid {
		return errors.New("grid does not match tiles")
	}
	return nil
}
