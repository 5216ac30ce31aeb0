package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// GameRecord is a finished game as stored.
type GameRecord struct {
	ID          int64
	GameID      string
	Player      string
	Score       int
	Moves       int
	Undos       int
	HighestTile int
	Duration    time.Duration
	StartedAt   time.Time
	FinishedAt  time.Time
	Over        bool
}

// PlayerStats aggregates a player's finished games.
type PlayerStats struct {
	Games        int
	BestScore    int
	AverageScore int
	BestTile     int
	TotalMoves   int
	TotalUndos   int
	TimePlayed   time.Duration
}

// JournalRecord is a stored game journal.
type JournalRecord struct {
	ID        int64
	GameID    string
	Player    string
	Data      []byte
	CreatedAt time.Time
}

const gameColumns = `id, game_id, player, score, moves, undos, highest_tile,
	duration_ms, started_at, finished_at, game_over`

// TopGames returns the best finished games across all players.
func (s *Store) TopGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+gameColumns+` FROM games ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	return scanGames(rows)
}

// RecentGames returns a player's most recently finished games.
func (s *Store) RecentGames(player string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+gameColumns+` FROM games WHERE player = ? ORDER BY id DESC LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]GameRecord, error) {
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var durationMs, startedMs, finishedMs int64
		if err := rows.Scan(
			&g.ID,
			&g.GameID,
			&g.Player,
			&g.Score,
			&g.Moves,
			&g.Undos,
			&g.HighestTile,
			&durationMs,
			&startedMs,
			&finishedMs,
			&g.Over,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Duration = time.Duration(durationMs) * time.Millisecond
		g.StartedAt = fromUnixMilli(startedMs)
		g.FinishedAt = fromUnixMilli(finishedMs)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

// Stats aggregates all finished games of a player.
func (s *Store) Stats(player string) (PlayerStats, error) {
	var st PlayerStats
	var avg sql.NullFloat64
	var best, tile, moves, undos, durationMs sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), MAX(highest_tile),
		        SUM(moves), SUM(undos), SUM(duration_ms)
		 FROM games WHERE player = ?`,
		player,
	).Scan(&st.Games, &best, &avg, &tile, &moves, &undos, &durationMs)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.AverageScore = int(avg.Float64 + 0.5)
	st.BestTile = int(tile.Int64)
	st.TotalMoves = int(moves.Int64)
	st.TotalUndos = int(undos.Int64)
	st.TimePlayed = time.Duration(durationMs.Int64) * time.Millisecond
	return st, nil
}

// Journals returns a player's stored journals, newest first.
func (s *Store) Journals(player string, limit int) ([]JournalRecord, error) {
	if limit <= 0 {
		limit = JournalsKept
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, player, data, created_at
		 FROM journals WHERE player = ? ORDER BY id DESC LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journals: %w", err)
	}
	defer rows.Close()

	var out []JournalRecord
	for rows.Next() {
		var j JournalRecord
		var data string
		var createdAt any
		if err := rows.Scan(&j.ID, &j.GameID, &j.Player, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		j.Data = []byte(data)
		j.CreatedAt = parseTimestamp(createdAt)
		out = append(out, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearGames deletes a player's finished games and journals.
func (s *Store) ClearGames(player string) error {
	if _, err := s.db.Exec("DELETE FROM games WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM journals WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear journals: %w", err)
	}
	return nil
}
