// Package session runs one game of 2048: it owns the board, the score and the
// undo history, sequences each move through its animation phases and talks to
// the renderer, persistence and telemetry collaborators.
//
// A Game is driven from a single goroutine. Delays between phases are
// scheduled on an injected Scheduler, so tests can step through a move with a
// virtual clock.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/dark2048/internal/config"
	"github.com/vovakirdan/dark2048/internal/engine"
	"github.com/vovakirdan/dark2048/internal/history"
)

var (
	ErrMoveInFlight = errors.New("session: a move is still in progress")
	ErrCooldown     = errors.New("session: move cooldown has not elapsed")
	ErrInvalidMove  = errors.New("session: move does not change the board")
)

// Phase is the stage of move processing the game is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseAnimatingMerges
	PhaseSpawning
	PhaseCheckingGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseAnimatingMerges:
		return "animating_merges"
	case PhaseSpawning:
		return "spawning"
	case PhaseCheckingGameOver:
		return "checking_game_over"
	default:
		return "unknown"
	}
}

// Scheduler runs a callback after a delay.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Renderer presents the game. All calls happen on the game's goroutine.
type Renderer interface {
	OnTileSpawned(t engine.Tile)
	OnMovementsComputed(moves []engine.Movement, mergeDelay time.Duration)
	OnScoreChanged(score, highScore int)
	OnGameOver(finalScore int)
	OnStateRestored(tiles []engine.Tile)
}

// Persistence stores the running game, the high score and finished games.
type Persistence interface {
	SaveState(s SavedState) error
	LoadState() (SavedState, bool, error)
	SaveHighScore(score int) error
	LoadHighScore() (int, error)
	SaveCompletedGame(g CompletedGame) error
}

// Telemetry receives fire-and-forget events. Failures and panics inside a
// Telemetry implementation never reach the game.
type Telemetry interface {
	LogEvent(name string, fields map[string]any)
	LogError(err error, fields map[string]any)
}

// Journal records a detailed history of one game for later inspection.
type Journal interface {
	Telemetry
	Begin(gameID string, at time.Time)
	Export() ([]byte, error)
}

// Options configures a new Game. Nil collaborators are replaced by no-ops;
// a nil Scheduler runs callbacks immediately.
type Options struct {
	Config      config.GameConfig
	Seed        int64
	Scheduler   Scheduler
	Clock       Clock
	Renderer    Renderer
	Persistence Persistence
	Telemetry   Telemetry
	Journal     Journal
}

// CompletedGame summarizes a finished game.
type CompletedGame struct {
	GameID      string        `json:"game_id"`
	Score       int           `json:"score"`
	Moves       int           `json:"moves"`
	Undos       int           `json:"undos"`
	HighestTile int           `json:"highest_tile"`
	Duration    time.Duration `json:"duration"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	Over        bool          `json:"over"`
	Journal     []byte        `json:"-"`
}

// Outcome describes an accepted move.
type Outcome struct {
	Direction  engine.Direction
	Movements  []engine.Movement
	ScoreDelta int
	Merges     int
}

// Stats is a summary of the running game.
type Stats struct {
	GameID      string
	Score       int
	HighScore   int
	Moves       int
	Undos       int
	UndosUsed   int
	UndoPolicy  history.Policy
	HighestTile int
	Duration    time.Duration
	Over        bool
}

// Game is a single 2048 session.
type Game struct {
	cfg       config.GameConfig
	sched     Scheduler
	clock     Clock
	renderer  Renderer
	store     Persistence
	telemetry Telemetry
	journal   Journal

	spawner *engine.Spawner
	history *history.Manager

	id        string
	tiles     []engine.Tile
	grid      engine.Grid
	score     int
	high      int
	nextID    engine.TileID
	over      bool
	phase     Phase
	gen       uint64 // Bumped on reset; stale phase callbacks check it
	startedAt time.Time

	lastMoveAt time.Time
	hasMoved   bool
}

// New creates a game. Call Start or NewGame before playing.
func New(opts Options) *Game {
	g := &Game{
		cfg:       opts.Config,
		sched:     opts.Scheduler,
		clock:     opts.Clock,
		renderer:  opts.Renderer,
		store:     opts.Persistence,
		telemetry: opts.Telemetry,
		journal:   opts.Journal,
		nextID:    1,
	}
	if g.sched == nil {
		g.sched = immediate{}
	}
	if g.clock == nil {
		g.clock = wallClock{}
	}
	if g.renderer == nil {
		g.renderer = nopRenderer{}
	}
	if g.store == nil {
		g.store = nopPersistence{}
	}
	if g.telemetry == nil {
		g.telemetry = nopTelemetry{}
	}
	if g.journal == nil {
		g.journal = nopJournal{}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g.spawner = engine.NewSpawner(rng, engine.SpawnPolicy{
		StartWithOnes: opts.Config.StartWithOnes,
		LuckyEights:   opts.Config.LuckyEights,
	})
	g.history = history.New(history.Policy(opts.Config.UndoLevels))
	return g
}

// ID returns the current game's identifier.
func (g *Game) ID() string { return g.id }

// Tiles returns a copy of the tiles on the board, ordered by ID.
func (g *Game) Tiles() []engine.Tile { return engine.CloneTiles(g.tiles) }

// Grid returns the cell-value view of the board.
func (g *Game) Grid() engine.Grid { return g.grid }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen so far.
func (g *Game) HighScore() int { return g.high }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Phase returns the current move-processing phase.
func (g *Game) Phase() Phase { return g.phase }

// Busy reports whether a move is in flight.
func (g *Game) Busy() bool { return g.phase != PhaseIdle }

// Config returns the configuration the game was created with.
func (g *Game) Config() config.GameConfig { return g.cfg }

// HistoryLen returns the number of undoable snapshots.
func (g *Game) HistoryLen() int { return g.history.Len() }

// CanUndo reports whether Undo would currently succeed.
func (g *Game) CanUndo() bool {
	return g.phase == PhaseIdle && g.history.CanUndo(g.over) == nil
}

// Stats summarizes the running game.
func (g *Game) Stats() Stats {
	return Stats{
		GameID:      g.id,
		Score:       g.score,
		HighScore:   g.high,
		Moves:       g.history.Len(),
		Undos:       g.history.Total(),
		UndosUsed:   g.history.Used(),
		UndoPolicy:  g.history.Policy(),
		HighestTile: engine.MaxTile(g.grid),
		Duration:    g.clock.Now().Sub(g.startedAt),
		Over:        g.over,
	}
}

// Start resumes the persisted game if there is a valid one, or starts a new
// game otherwise. A saved game that fails validation is logged and discarded.
func (g *Game) Start() {
	high, err := g.store.LoadHighScore()
	if err != nil {
		g.logError(err, "load_high_score")
	}
	g.high = high

	st, ok, err := g.store.LoadState()
	switch {
	case err != nil:
		g.logError(errors.Join(ErrCorruptState, err), "load_state")
		g.event("corrupt_state", map[string]any{"reason": err.Error()})
		g.NewGame()
		return
	case !ok:
		g.NewGame()
		return
	}

	if err := st.Validate(); err != nil {
		g.logError(err, "validate_state")
		g.event("corrupt_state", map[string]any{"reason": err.Error()})
		g.NewGame()
		return
	}
	g.restore(st)
}

// NewGame ends the current game and starts a fresh one with two tiles.
// A game with a nonzero score is recorded as completed first.
func (g *Game) NewGame() {
	now := g.clock.Now()
	if g.score > 0 {
		g.recordCompleted(now)
	}

	g.gen++
	g.id = uuid.NewString()
	g.tiles = nil
	g.grid = engine.Grid{}
	g.score = 0
	g.nextID = 1
	g.over = false
	g.phase = PhaseIdle
	g.startedAt = now
	g.hasMoved = false
	g.history.Clear()

	g.journal.Begin(g.id, now)
	g.event("new_game", map[string]any{"game_id": g.id})

	g.renderer.OnStateRestored(nil)
	g.spawnTile()
	g.spawnTile()
	g.renderer.OnScoreChanged(g.score, g.high)
	g.persist()
}

func (g *Game) recordCompleted(now time.Time) {
	summary := CompletedGame{
		GameID:      g.id,
		Score:       g.score,
		Moves:       g.history.Len(),
		Undos:       g.history.Total(),
		HighestTile: engine.MaxTile(g.grid),
		Duration:    now.Sub(g.startedAt),
		StartedAt:   g.startedAt,
		FinishedAt:  now,
		Over:        g.over,
	}

	journal, err := g.exportJournal()
	if err != nil {
		g.logError(err, "export_journal")
	}
	summary.Journal = journal

	if err := g.store.SaveCompletedGame(summary); err != nil {
		g.logError(err, "save_completed_game")
	}
}

func (g *Game) restore(st SavedState) {
	g.gen++
	g.id = st.GameID
	if g.id == "" {
		g.id = uuid.NewString()
	}
	g.tiles = engine.CloneTiles(st.Tiles)
	g.grid = engine.GridFromTiles(g.tiles)
	g.score = st.Score
	g.nextID = st.NextTileID
	g.over = st.Over || engine.IsTerminal(g.grid)
	g.phase = PhaseIdle
	g.startedAt = st.StartedAt
	if g.startedAt.IsZero() {
		g.startedAt = g.clock.Now()
	}
	g.history.Restore(st.History, st.UndosUsed, st.UndoCount, st.LastUndone)
	if g.score > g.high {
		g.high = g.score
	}

	g.journal.Begin(g.id, g.clock.Now())
	g.event("state_restored", map[string]any{
		"game_id": g.id,
		"score":   g.score,
		"tiles":   len(g.tiles),
	})

	g.renderer.OnStateRestored(g.Tiles())
	g.renderer.OnScoreChanged(g.score, g.high)
	if g.over {
		g.renderer.OnGameOver(g.score)
	}
}

// spawnTile places one new tile. Panics with engine.ErrExhaustedGrid if the
// board is full.
func (g *Game) spawnTile() engine.Tile {
	s, ok := g.spawner.Spawn(g.grid)
	if !ok {
		panic(engine.ErrExhaustedGrid)
	}

	t := engine.Tile{ID: g.nextID, Value: s.Value, Row: s.Row, Col: s.Col}
	g.nextID++
	g.tiles = append(g.tiles, t)
	g.grid[t.Row][t.Col] = t.Value

	g.event("tile_spawn", map[string]any{
		"id":    int(t.ID),
		"row":   t.Row,
		"col":   t.Col,
		"value": t.Value,
		"roll":  s.Roll,
	})
	g.renderer.OnTileSpawned(t)
	return t
}

// persist saves the running game. Failures are logged only.
func (g *Game) persist() {
	if err := g.store.SaveState(g.Snapshot()); err != nil {
		g.logError(err, "save_state")
	}
}

func (g *Game) updateHighScore() {
	if g.score <= g.high {
		return
	}
	g.high = g.score
	if err := g.store.SaveHighScore(g.high); err != nil {
		g.logError(err, "save_high_score")
	}
}
