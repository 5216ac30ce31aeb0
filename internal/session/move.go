package session

import (
	"github.com/vovakirdan/dark2048/internal/engine"
	"github.com/vovakirdan/dark2048/internal/history"
)

// Move plays one move.
//
// The board, score and movements are final when Move returns; the new tile
// appears after the merge animation delay and the settle delay have passed on
// the scheduler. Until then Busy reports true and further moves fail with
// ErrMoveInFlight.
func (g *Game) Move(dir engine.Direction) (Outcome, error) {
	if dir == engine.DirNone {
		return Outcome{}, ErrInvalidMove
	}
	if g.phase != PhaseIdle {
		return Outcome{}, ErrMoveInFlight
	}

	now := g.clock.Now()
	if cd := g.cfg.MoveCooldown(); cd > 0 && g.hasMoved && now.Sub(g.lastMoveAt) < cd {
		return Outcome{}, ErrCooldown
	}
	g.lastMoveAt = now
	g.hasMoved = true

	g.phase = PhaseResolving
	g.history.RecordBeforeMove(history.Entry{
		Grid:      g.grid,
		Score:     g.score,
		Tiles:     g.tiles,
		Direction: dir,
	})

	res := engine.Resolve(g.tiles, dir)
	if !res.Changed {
		g.history.DiscardLast()
		g.phase = PhaseIdle
		g.event("invalid_move", map[string]any{"direction": dir.String()})
		return Outcome{Direction: dir}, ErrInvalidMove
	}

	before := g.score
	g.tiles = res.Tiles
	g.grid = res.Grid
	g.score += res.ScoreDelta

	if g.history.NoteMove(dir) {
		g.event("undo_rearmed", map[string]any{"direction": dir.String()})
	}

	g.event("move", map[string]any{
		"direction":   dir.String(),
		"score_delta": res.ScoreDelta,
		"merges":      res.Merges(),
		"score":       g.score,
		"grid":        g.grid,
	})
	if res.ScoreDelta > 0 {
		g.event("score_change", map[string]any{
			"from":  before,
			"to":    g.score,
			"delta": res.ScoreDelta,
		})
		g.updateHighScore()
	}

	delay := g.cfg.AnimationDelay()
	g.renderer.OnMovementsComputed(res.Movements, delay)
	if res.ScoreDelta > 0 {
		g.renderer.OnScoreChanged(g.score, g.high)
	}

	g.phase = PhaseAnimatingMerges
	gen := g.gen
	g.sched.After(delay, func() {
		if gen == g.gen {
			g.finishMerges()
		}
	})

	return Outcome{
		Direction:  dir,
		Movements:  res.Movements,
		ScoreDelta: res.ScoreDelta,
		Merges:     res.Merges(),
	}, nil
}

// finishMerges ends the merge animation and schedules the spawn.
func (g *Game) finishMerges() {
	g.phase = PhaseSpawning
	gen := g.gen
	g.sched.After(g.cfg.SettleDelay(), func() {
		if gen == g.gen {
			g.spawnAfterMove()
		}
	})
}

// spawnAfterMove adds the post-move tile, checks for game over and saves.
func (g *Game) spawnAfterMove() {
	g.spawnTile()

	g.phase = PhaseCheckingGameOver
	if engine.IsTerminal(g.grid) {
		g.over = true
		g.history.ResetBudget()
		g.event("game_over", map[string]any{
			"score":        g.score,
			"highest_tile": engine.MaxTile(g.grid),
			"moves":        g.history.Len(),
		})
		g.renderer.OnGameOver(g.score)
	}

	g.persist()
	g.phase = PhaseIdle
}

// Undo restores the board from before the last move.
// Returns ErrMoveInFlight while a move is processing, or one of the history
// errors when the undo policy refuses.
func (g *Game) Undo() error {
	if g.phase != PhaseIdle {
		return ErrMoveInFlight
	}

	e, err := g.history.PopForUndo(g.over)
	if err != nil {
		g.event("undo_refused", map[string]any{"reason": err.Error()})
		return err
	}

	g.tiles = engine.CloneTiles(e.Tiles)
	g.grid = e.Grid
	g.score = e.Score
	g.over = false

	g.event("undo", map[string]any{
		"direction": e.Direction.String(),
		"used":      g.history.Used(),
		"total":     g.history.Total(),
	})

	g.renderer.OnStateRestored(g.Tiles())
	g.renderer.OnScoreChanged(g.score, g.high)
	g.persist()
	return nil
}
