package storage

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/dark2048/internal/session"
)

const highScoreKey = "high_score"

// PlayerStore is one player's slice of the database. It implements
// session.Persistence.
type PlayerStore struct {
	store  *Store
	player string
}

// Player returns the player name.
func (p *PlayerStore) Player() string {
	return p.player
}

// SaveState stores the game in progress, replacing the previous one.
func (p *PlayerStore) SaveState(st session.SavedState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode game state: %w", err)
	}

	_, err = p.store.db.Exec(
		`INSERT INTO game_states (player, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		p.player, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game state: %w", err)
	}
	return nil
}

// LoadState returns the saved game, or false if there is none.
// Undecodable data is reported as an error.
func (p *PlayerStore) LoadState() (session.SavedState, bool, error) {
	var data string
	err := p.store.db.QueryRow(
		"SELECT state FROM game_states WHERE player = ?",
		p.player,
	).Scan(&data)
	if isNoRows(err) {
		return session.SavedState{}, false, nil
	}
	if err != nil {
		return session.SavedState{}, false, fmt.Errorf("storage: cannot load game state: %w", err)
	}

	var st session.SavedState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return session.SavedState{}, false, fmt.Errorf("storage: cannot decode game state: %w", err)
	}
	return st, true, nil
}

// ClearState removes the saved game.
func (p *PlayerStore) ClearState() error {
	_, err := p.store.db.Exec("DELETE FROM game_states WHERE player = ?", p.player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear game state: %w", err)
	}
	return nil
}

// SaveHighScore stores score if it beats the stored high score.
func (p *PlayerStore) SaveHighScore(score int) error {
	_, err := p.store.db.Exec(
		`INSERT INTO meta (player, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(player, key) DO UPDATE SET value = MAX(value, excluded.value)`,
		p.player, highScoreKey, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// LoadHighScore returns the stored high score, 0 if none.
func (p *PlayerStore) LoadHighScore() (int, error) {
	var score int
	err := p.store.db.QueryRow(
		"SELECT value FROM meta WHERE player = ? AND key = ?",
		p.player, highScoreKey,
	).Scan(&score)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SaveCompletedGame records a finished game and its journal. Only the most
// recent JournalsKept journals are retained.
func (p *PlayerStore) SaveCompletedGame(g session.CompletedGame) error {
	tx, err := p.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.Exec(
		`INSERT INTO games
		 (game_id, player, score, moves, undos, highest_tile, duration_ms, started_at, finished_at, game_over)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.GameID,
		p.player,
		g.Score,
		g.Moves,
		g.Undos,
		g.HighestTile,
		g.Duration.Milliseconds(),
		unixMilli(g.StartedAt),
		unixMilli(g.FinishedAt),
		g.Over,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save completed game: %w", err)
	}

	if len(g.Journal) > 0 {
		if _, err := tx.Exec(
			"INSERT INTO journals (game_id, player, data) VALUES (?, ?, ?)",
			g.GameID, p.player, string(g.Journal),
		); err != nil {
			return fmt.Errorf("storage: cannot save journal: %w", err)
		}

		if _, err := tx.Exec(
			`DELETE FROM journals WHERE player = ? AND id NOT IN
			 (SELECT id FROM journals WHERE player = ? ORDER BY id DESC LIMIT ?)`,
			p.player, p.player, JournalsKept,
		); err != nil {
			return fmt.Errorf("storage: cannot prune journals: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit completed game: %w", err)
	}
	return nil
}
