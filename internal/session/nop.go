package session

import (
	"fmt"
	"time"

	"github.com/vovakirdan/dark2048/internal/engine"
)

type immediate struct{}

func (immediate) After(_ time.Duration, fn func()) { fn() }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

type nopRenderer struct{}

func (nopRenderer) OnTileSpawned(engine.Tile) {}
func (nopRenderer) OnMovementsComputed([]engine.Movement, time.Duration) {}
func (nopRenderer) OnScoreChanged(int, int) {}
func (nopRenderer) OnGameOver(int) {}
func (nopRenderer) OnStateRestored([]engine.Tile) {}

type nopPersistence struct{}

func (nopPersistence) SaveState(SavedState) error { return nil }
func (nopPersistence) LoadState() (SavedState, bool, error) { return SavedState{}, false, nil }
func (nopPersistence) SaveHighScore(int) error { return nil }
func (nopPersistence) LoadHighScore() (int, error) { return 0, nil }
func (nopPersistence) SaveCompletedGame(CompletedGame) error { return nil }

type nopTelemetry struct{}

func (nopTelemetry) LogEvent(string, map[string]any) {}
func (nopTelemetry) LogError(error, map[string]any) {}

type nopJournal struct{ nopTelemetry }

func (nopJournal) Begin(string, time.Time) {}
func (nopJournal) Export() ([]byte, error) { return nil, nil }

// event sends an event to telemetry and the journal. Panics raised by either
// are swallowed.
func (g *Game) event(name string, fields map[string]any) {
	for _, t := range []Telemetry{g.telemetry, g.journal} {
		func() {
			defer func() { _ = recover() }()
			t.LogEvent(name, fields)
		}()
	}
}

func (g *Game) logError(err error, op string) {
	fields := map[string]any{"op": op, "game_id": g.id}
	for _, t := range []Telemetry{g.telemetry, g.journal} {
		func() {
			defer func() { _ = recover() }()
			t.LogError(err, fields)
		}()
	}
}

func (g *Game) exportJournal() (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session: journal export panicked: %v", r)
		}
	}()
	return g.journal.Export()
}
