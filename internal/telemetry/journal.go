package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vovakirdan/dark2048/internal/engine"
)

// SnapshotEvery is the number of moves between board snapshots.
const SnapshotEvery = 10

// GameLog is the exported form of a journal.
type GameLog struct {
	GameID       string           `json:"game_id"`
	StartedAt    time.Time        `json:"started_at"`
	Moves        []MoveRecord     `json:"moves"`
	TileSpawns   []SpawnRecord    `json:"tile_spawns"`
	ScoreChanges []ScoreRecord    `json:"score_changes"`
	Events       []EventRecord    `json:"events"`
	Errors       []ErrorRecord    `json:"errors"`
	Snapshots    []SnapshotRecord `json:"state_snapshots"`
}

// MoveRecord is one accepted move.
type MoveRecord struct {
	At         time.Time        `json:"at"`
	Direction  engine.Direction `json:"direction"`
	ScoreDelta int              `json:"score_delta"`
	Merges     int              `json:"merges"`
	Score      int              `json:"score"`
}

// SpawnRecord is one spawned tile.
type SpawnRecord struct {
	At    time.Time     `json:"at"`
	ID    engine.TileID `json:"id"`
	Row   int           `json:"row"`
	Col   int           `json:"col"`
	Value int           `json:"value"`
}

// ScoreRecord is one score increase.
type ScoreRecord struct {
	At    time.Time `json:"at"`
	From  int       `json:"from"`
	To    int       `json:"to"`
	Delta int       `json:"delta"`
}

// EventRecord is any other game event.
type EventRecord struct {
	At     time.Time      `json:"at"`
	Name   string         `json:"name"`
	Fields map[string]any `json:"fields,omitempty"`
}

// ErrorRecord is a logged error.
type ErrorRecord struct {
	At     time.Time      `json:"at"`
	Error  string         `json:"error"`
	Fields map[string]any `json:"fields,omitempty"`
}

// SnapshotRecord is the board after every SnapshotEvery moves.
type SnapshotRecord struct {
	At    time.Time   `json:"at"`
	Move  int         `json:"move"`
	Grid  engine.Grid `json:"grid"`
	Score int         `json:"score"`
}

// Journal collects a GameLog for the game in progress. It implements
// session.Journal.
type Journal struct {
	now func() time.Time
	log GameLog
}

// NewJournal creates a journal that timestamps entries with now.
func NewJournal(now func() time.Time) *Journal {
	if now == nil {
		now = time.Now
	}
	return &Journal{now: now}
}

// Begin discards the current log and starts one for gameID.
func (j *Journal) Begin(gameID string, at time.Time) {
	j.log = GameLog{GameID: gameID, StartedAt: at}
}

// Log returns the log collected so far.
func (j *Journal) Log() GameLog {
	return j.log
}

// Export encodes the log as JSON.
func (j *Journal) Export() ([]byte, error) {
	data, err := json.Marshal(j.log)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot encode journal: %w", err)
	}
	return data, nil
}

// LogEvent implements session.Telemetry.
func (j *Journal) LogEvent(name string, fields map[string]any) {
	at := j.now()
	switch name {
	case "move":
		dir, _ := engine.ParseDirection(stringField(fields, "direction"))
		score := intField(fields, "score")
		j.log.Moves = append(j.log.Moves, MoveRecord{
			At:         at,
			Direction:  dir,
			ScoreDelta: intField(fields, "score_delta"),
			Merges:     intField(fields, "merges"),
			Score:      score,
		})
		if n := len(j.log.Moves); n%SnapshotEvery == 0 {
			grid, _ := fields["grid"].(engine.Grid)
			j.log.Snapshots = append(j.log.Snapshots, SnapshotRecord{At: at, Move: n, Grid: grid, Score: score})
		}
	case "tile_spawn":
		j.log.TileSpawns = append(j.log.TileSpawns, SpawnRecord{
			At:    at,
			ID:    engine.TileID(intField(fields, "id")),
			Row:   intField(fields, "row"),
			Col:   intField(fields, "col"),
			Value: intField(fields, "value"),
		})
	case "score_change":
		j.log.ScoreChanges = append(j.log.ScoreChanges, ScoreRecord{
			At:    at,
			From:  intField(fields, "from"),
			To:    intField(fields, "to"),
			Delta: intField(fields, "delta"),
		})
	default:
		j.log.Events = append(j.log.Events, EventRecord{At: at, Name: name, Fields: copyFields(fields)})
	}
}

// LogError implements session.Telemetry.
func (j *Journal) LogError(err error, fields map[string]any) {
	j.log.Errors = append(j.log.Errors, ErrorRecord{
		At:     j.now(),
		Error:  err.Error(),
		Fields: copyFields(fields),
	})
}

// ParseGameLog decodes an exported journal.
func ParseGameLog(data []byte) (GameLog, error) {
	var gl GameLog
	if err := json.Unmarshal(data, &gl); err != nil {
		return GameLog{}, fmt.Errorf("telemetry: cannot decode journal: %w", err)
	}
	return gl, nil
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case engine.TileID:
		return int(v)
	default:
		return 0
	}
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func copyFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
