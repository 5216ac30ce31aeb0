// Package gesture turns pointer input into moves.
//
// A single-pointer drag previews the candidate move by sliding tiles part of
// the way toward where the move would put them, and commits the move once
// the drag is long enough. Releasing a short drag springs the tiles back;
// releasing a quick swipe plays one move. Two-pointer input is kept apart
// from dragging and drives the menu and zoom instead.
package gesture

import (
	"math"
	"time"

	"github.com/vovakirdan/dark2048/internal/config"
	"github.com/vovakirdan/dark2048/internal/engine"
	"github.com/vovakirdan/dark2048/internal/session"
)

// State is the interpreter state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StatePreviewing
	StateExecuting // A move was committed; waiting for a new direction
	StateTwoFinger
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StatePreviewing:
		return "previewing"
	case StateExecuting:
		return "executing"
	case StateTwoFinger:
		return "two_finger"
	default:
		return "unknown"
	}
}

// Point is a pointer position. Y grows downward.
type Point struct {
	X, Y float64
}

// Position is a fractional board position used while previewing.
type Position struct {
	Row, Col float64
}

// Board is the game the interpreter plays on.
type Board interface {
	Tiles() []engine.Tile
	Busy() bool
	Move(dir engine.Direction) (session.Outcome, error)
	Undo() error
}

// View shows preview positions and two-finger effects.
type View interface {
	PreviewTiles(pos map[engine.TileID]Position)
	ResetTiles()
	ToggleMenu()
	Zoom(factor float64)
}

// EventKind says what a pointer event resulted in.
type EventKind int

const (
	EventNone EventKind = iota
	EventPreview
	EventMove
	EventSpringBack
	EventUndo
	EventMenu
	EventZoom
)

// Event reports the effect of one pointer call.
type Event struct {
	Kind      EventKind
	Direction engine.Direction
	Ratio     float64 // Preview progress for EventPreview
	Zoom      float64 // Scale factor for EventZoom
	Err       error   // Error from the board for EventMove and EventUndo
}

type twoFingerMode int

const (
	modeUndecided twoFingerMode = iota
	modePinch
	modeSwipe
)

// Interpreter is the drag state machine for one board.
type Interpreter struct {
	cfg   config.GameConfig
	board Board
	view  View
	sched session.Scheduler
	clock session.Clock

	state State
	start Point // Drag origin, moved to the commit point once a move lands
	basis []engine.Tile
	stale bool // Basis must be refetched before the next preview

	candidate    engine.Direction
	lastExecuted engine.Direction
	execPoint    Point
	waiting      bool
	executed     bool // A move was committed during this drag
	previewed    bool
	gen          uint64

	lastTap time.Time
	tapped  bool

	tfStart     [2]Point
	tfMode      twoFingerMode
	menuToggled bool
}

// New creates an interpreter for board.
func New(cfg config.GameConfig, board Board, view View, sched session.Scheduler, clock session.Clock) *Interpreter {
	return &Interpreter{
		cfg:   cfg,
		board: board,
		view:  view,
		sched: sched,
		clock: clock,
	}
}

// State returns the current state.
func (in *Interpreter) State() State {
	return in.state
}

// PointerDown starts a gesture. pointers lists every pointer currently down.
func (in *Interpreter) PointerDown(pointers ...Point) Event {
	switch len(pointers) {
	case 0:
		return Event{}
	case 1:
	default:
		in.beginTwoFinger(pointers[0], pointers[1])
		return Event{}
	}

	now := in.clock.Now()
	if in.cfg.DoubleTapUndo && in.tapped {
		gap := now.Sub(in.lastTap)
		minGap := time.Duration(in.cfg.Gesture.DoubleTapMinMs) * time.Millisecond
		window := time.Duration(in.cfg.Gesture.DoubleTapWindowMs) * time.Millisecond
		if gap > minGap && gap < window {
			in.tapped = false
			in.state = StateIdle
			return Event{Kind: EventUndo, Err: in.board.Undo()}
		}
	}

	in.state = StateDragging
	in.start = pointers[0]
	in.basis = in.board.Tiles()
	in.stale = false
	in.candidate = engine.DirNone
	in.lastExecuted = engine.DirNone
	in.waiting = false
	in.executed = false
	in.previewed = false
	in.gen++
	return Event{}
}

// PointerMove updates the gesture. Samples are ignored while the board has a
// move in flight.
func (in *Interpreter) PointerMove(pointers ...Point) Event {
	if len(pointers) == 0 {
		return Event{}
	}
	if in.state == StateTwoFinger {
		if len(pointers) < 2 {
			return Event{}
		}
		return in.moveTwoFinger(pointers[0], pointers[1])
	}
	if in.state == StateIdle {
		return Event{}
	}
	if len(pointers) > 1 {
		in.beginTwoFinger(pointers[0], pointers[1])
		return Event{}
	}
	if in.board.Busy() {
		return Event{}
	}
	if in.stale {
		in.basis = in.board.Tiles()
		in.stale = false
	}

	p := pointers[0]
	if in.waiting {
		dir, dist := dominant(p.X-in.execPoint.X, p.Y-in.execPoint.Y)
		if dist <= in.cfg.Gesture.RearmDistance || dir == in.lastExecuted {
			return Event{}
		}
		in.waiting = false
		in.state = StateDragging
	}

	sens := in.cfg.DragSensitivity
	dir, dist := dominant((p.X-in.start.X)*sens, (p.Y-in.start.Y)*sens)
	if dist < in.cfg.Gesture.NoiseThreshold {
		return Event{}
	}

	ratio := math.Min(1, dist/(3*in.cfg.Gesture.CellStride))
	in.candidate = dir
	in.view.PreviewTiles(interpolate(in.basis, dir, ratio))
	in.previewed = true
	in.state = StatePreviewing

	if ratio >= in.cfg.Gesture.CommitRatio && dir != in.lastExecuted {
		return in.execute(dir, p)
	}
	return Event{Kind: EventPreview, Direction: dir, Ratio: ratio}
}

// PointerUp ends the gesture at p.
func (in *Interpreter) PointerUp(p Point) Event {
	switch in.state {
	case StateIdle:
		return Event{}
	case StateTwoFinger:
		in.state = StateIdle
		return Event{}
	}

	defer func() {
		in.state = StateIdle
		in.waiting = false
		in.lastExecuted = engine.DirNone
	}()

	busy := in.board.Busy()
	if in.previewed && !busy {
		in.view.ResetTiles()
	}
	if in.executed || busy {
		return Event{}
	}

	dx, dy := p.X-in.start.X, p.Y-in.start.Y
	dir, dist := dominant(dx, dy)
	if dist > in.cfg.Gesture.ReleaseThreshold {
		return in.execute(dir, p)
	}

	if dist <= in.cfg.Gesture.NoiseThreshold {
		in.lastTap = in.clock.Now()
		in.tapped = true
	}
	if in.previewed {
		return Event{Kind: EventSpringBack}
	}
	return Event{}
}

// Cancel abandons the gesture, for example when the pointer leaves the board.
func (in *Interpreter) Cancel() {
	if in.previewed && !in.board.Busy() {
		in.view.ResetTiles()
	}
	in.state = StateIdle
	in.waiting = false
	in.previewed = false
	in.lastExecuted = engine.DirNone
	in.gen++
}

// execute commits a move. Once it has landed, the drag origin moves to the
// commit point so further previews start from the new board.
func (in *Interpreter) execute(dir engine.Direction, at Point) Event {
	_, err := in.board.Move(dir)

	in.lastExecuted = dir
	in.waiting = true
	in.executed = true
	in.execPoint = at
	in.state = StateExecuting

	if err == nil {
		in.gen++
		gen := in.gen
		in.sched.After(in.cfg.AnimationDelay(), func() {
			if gen != in.gen || in.state == StateIdle || in.state == StateTwoFinger {
				return
			}
			in.start = in.execPoint
			in.stale = true
		})
	}
	return Event{Kind: EventMove, Direction: dir, Err: err}
}

func (in *Interpreter) beginTwoFinger(a, b Point) {
	if in.previewed && !in.board.Busy() {
		in.view.ResetTiles()
	}
	in.previewed = false
	in.waiting = false
	in.gen++

	in.state = StateTwoFinger
	in.tfStart = [2]Point{a, b}
	in.tfMode = modeUndecided
	in.menuToggled = false
}

func (in *Interpreter) moveTwoFinger(a, b Point) Event {
	startDist := distance(in.tfStart[0], in.tfStart[1])
	dist := distance(a, b)
	dy := (a.Y+b.Y)/2 - (in.tfStart[0].Y+in.tfStart[1].Y)/2
	thr := in.cfg.Gesture.TwoFingerThreshold

	if in.tfMode == modeUndecided {
		switch {
		case math.Abs(dist-startDist) > thr:
			in.tfMode = modePinch
		case math.Abs(dy) > thr:
			in.tfMode = modeSwipe
		default:
			return Event{}
		}
	}

	switch in.tfMode {
	case modePinch:
		if startDist == 0 {
			return Event{}
		}
		factor := dist / startDist
		in.view.Zoom(factor)
		return Event{Kind: EventZoom, Zoom: factor}
	case modeSwipe:
		if !in.cfg.TwoFingerMenu || in.menuToggled || math.Abs(dy) < in.cfg.Gesture.MenuSwipeThreshold {
			return Event{}
		}
		in.menuToggled = true
		in.view.ToggleMenu()
		return Event{Kind: EventMenu}
	}
	return Event{}
}

// dominant returns the direction of the larger axis and its magnitude.
func dominant(dx, dy float64) (engine.Direction, float64) {
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return engine.DirRight, dx
		}
		return engine.DirLeft, -dx
	}
	if dy > 0 {
		return engine.DirDown, dy
	}
	if dy < 0 {
		return engine.DirUp, -dy
	}
	return engine.DirNone, 0
}

// interpolate places each tile ratio of the way toward its final cell.
func interpolate(tiles []engine.Tile, dir engine.Direction, ratio float64) map[engine.TileID]Position {
	final := engine.Preview(tiles, dir)
	out := make(map[engine.TileID]Position, len(tiles))
	for _, t := range tiles {
		to := final[t.ID]
		out[t.ID] = Position{
			Row: float64(t.Row) + float64(to.Row-t.Row)*ratio,
			Col: float64(t.Col) + float64(to.Col-t.Col)*ratio,
		}
	}
	return out
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
