package telemetry

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dark2048/internal/engine"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "test")

	l.LogEvent("move", map[string]any{"direction": "left"})
	if buf.Len() != 0 {
		t.Errorf("move logged at default level: %q", buf.String())
	}

	l.LogEvent("game_over", map[string]any{"score": 128, "grid": engine.Grid{}})
	out := buf.String()
	if !strings.Contains(out, "game_over") || !strings.Contains(out, "score=128") {
		t.Errorf("game_over entry = %q", out)
	}
	if strings.Contains(out, "grid") {
		t.Errorf("grid should not be logged: %q", out)
	}

	buf.Reset()
	l.SetLevel(log.DebugLevel)
	l.LogEvent("move", map[string]any{"direction": "left"})
	if !strings.Contains(buf.String(), "direction=left") {
		t.Errorf("debug entry = %q", buf.String())
	}

	buf.Reset()
	l.LogError(errors.New("disk full"), map[string]any{"op": "save_state"})
	if !strings.Contains(buf.String(), "disk full") || !strings.Contains(buf.String(), "op=save_state") {
		t.Errorf("error entry = %q", buf.String())
	}
}

func TestJournalRecordsByKind(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j := NewJournal(func() time.Time { return now })
	j.Begin("g1", now)

	j.LogEvent("tile_spawn", map[string]any{"id": 1, "row": 0, "col": 2, "value": 2})
	j.LogEvent("move", map[string]any{"direction": "left", "score_delta": 4, "merges": 1, "score": 4})
	j.LogEvent("score_change", map[string]any{"from": 0, "to": 4, "delta": 4})
	j.LogEvent("undo", map[string]any{"direction": "left"})
	j.LogError(errors.New("boom"), map[string]any{"op": "save_state"})

	gl := j.Log()
	if gl.GameID != "g1" {
		t.Errorf("GameID = %q, want g1", gl.GameID)
	}
	if len(gl.TileSpawns) != 1 || gl.TileSpawns[0].Col != 2 {
		t.Errorf("TileSpawns = %+v", gl.TileSpawns)
	}
	if len(gl.Moves) != 1 || gl.Moves[0].Direction != engine.DirLeft || gl.Moves[0].ScoreDelta != 4 {
		t.Errorf("Moves = %+v", gl.Moves)
	}
	if len(gl.ScoreChanges) != 1 || gl.ScoreChanges[0].To != 4 {
		t.Errorf("ScoreChanges = %+v", gl.ScoreChanges)
	}
	if len(gl.Events) != 1 || gl.Events[0].Name != "undo" {
		t.Errorf("Events = %+v", gl.Events)
	}
	if len(gl.Errors) != 1 || gl.Errors[0].Error != "boom" {
		t.Errorf("Errors = %+v", gl.Errors)
	}

	j.Begin("g2", now)
	if len(j.Log().Moves) != 0 {
		t.Error("Begin should discard the previous log")
	}
}

func TestJournalSnapshotsEveryTenMoves(t *testing.T) {
	j := NewJournal(nil)
	j.Begin("g", time.Now())

	grid := engine.Grid{{2, 4, 0, 0}}
	for i := range 25 {
		j.LogEvent("move", map[string]any{"direction": "up", "score": i, "grid": grid})
	}

	snaps := j.Log().Snapshots
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	if snaps[0].Move != 10 || snaps[1].Move != 20 {
		t.Errorf("snapshot moves = %d, %d, want 10, 20", snaps[0].Move, snaps[1].Move)
	}
	if snaps[1].Grid != grid || snaps[1].Score != 19 {
		t.Errorf("snapshot = %+v", snaps[1])
	}
}

func TestExportParses(t *testing.T) {
	j := NewJournal(nil)
	j.Begin("g", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	j.LogEvent("move", map[string]any{"direction": "right", "score": 8})

	data, err := j.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	gl, err := ParseGameLog(data)
	if err != nil {
		t.Fatalf("ParseGameLog failed: %v", err)
	}
	if len(gl.Moves) != 1 || gl.Moves[0].Direction != engine.DirRight || gl.Moves[0].Score != 8 {
		t.Errorf("Moves = %+v", gl.Moves)
	}

	if _, err := ParseGameLog([]byte("{")); err == nil {
		t.Error("ParseGameLog should reject truncated input")
	}
}
