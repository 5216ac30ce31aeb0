package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dark2048/internal/config"
	"github.com/vovakirdan/dark2048/internal/core"
	"github.com/vovakirdan/dark2048/internal/gesture"
	"github.com/vovakirdan/dark2048/internal/history"
	"github.com/vovakirdan/dark2048/internal/sched"
	"github.com/vovakirdan/dark2048/internal/session"
	"github.com/vovakirdan/dark2048/internal/storage"
	"github.com/vovakirdan/dark2048/internal/telemetry"
)

const (
	statusTTL = 2 * time.Second
	maxFrame  = 250 * time.Millisecond

	// twoFingerSpread places the second pointer of a right-button drag.
	twoFingerSpread = 40
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a game screen.
type Options struct {
	Config  config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store    // Optional; the game is not saved without it
	Player  string            // Storage key for the saved game and scores
	Logger  *telemetry.Logger // Optional
}

// Model is the Bubble Tea model of the game screen. The game, its scheduler
// and the view are shared pointers, so copies of Model made by Bubble Tea
// all drive the same session.
type Model struct {
	opts Options

	game    *session.Game
	view    *BoardView
	drag    *gesture.Interpreter
	queue   *sched.Queue
	journal *telemetry.Journal
	screen  *core.Screen

	keys KeyMap
	help help.Model
	menu *gameMenu

	scores *ScoreboardModel

	status    string
	statusAge time.Duration
	lastTick  time.Time
	rightDown bool
	quitting  bool
}

// NewModel creates the game screen and resumes the saved game, if any.
func NewModel(opts Options) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	now := time.Now()
	queue := sched.NewQueue(now)
	view := NewBoardView(opts.Config)
	journal := telemetry.NewJournal(queue.Now)

	so := session.Options{
		Config:    opts.Config,
		Seed:      opts.Runtime.Seed,
		Scheduler: queue,
		Clock:     queue,
		Renderer:  view,
		Journal:   journal,
	}
	if opts.Store != nil {
		so.Persistence = opts.Store.ForPlayer(opts.Player)
	}
	if opts.Logger != nil {
		so.Telemetry = opts.Logger
	}

	game := session.New(so)
	game.Start()

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		opts:     opts,
		game:     game,
		view:     view,
		drag:     gesture.New(opts.Config, game, view, queue, queue),
		queue:    queue,
		journal:  journal,
		screen:   core.NewScreen(opts.Runtime.ScreenW, core.Max(1, opts.Runtime.ScreenH-1)),
		keys:     DefaultKeyMap(),
		help:     h,
		menu:     &gameMenu{},
		lastTick: now,
	}
}

// Game returns the running session.
func (m Model) Game() *session.Game {
	return m.game
}

// Journal returns the detailed log of the running game.
func (m Model) Journal() *telemetry.Journal {
	return m.journal
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scores != nil {
		return m.updateScores(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresClosedMsg:
		m.scores = nil
		m.lastTick = time.Now()
		return m, tickCmd(m.opts.Runtime.TickRate)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		// The frame loop restarts when the scoreboard closes.
		return m, nil
	}

	sb, cmd := m.scores.Update(msg)
	board, ok := sb.(ScoreboardModel)
	if ok {
		m.scores = &board
	}
	if ok && board.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view.MenuOpen() {
		if choice, ok := m.menu.handle(action); ok {
			m.view.SetMenuOpen(false)
			return m.choose(choice)
		}
		return m, nil
	}

	switch {
	case action.IsMove():
		_, err := m.game.Move(directionFor(action))
		m.report(err)
	case action == core.ActionUndo:
		m.undo()
	case action == core.ActionNewGame:
		m.drag.Cancel()
		m.game.NewGame()
		m.setStatus("new game")
	case action == core.ActionMenu:
		m.openMenu()
	case action == core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
	}
	return m, nil
}

func (m Model) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	switch c {
	case MenuNewGame:
		m.drag.Cancel()
		m.game.NewGame()
		m.setStatus("new game")
	case MenuUndo:
		m.undo()
	case MenuScores:
		sb := NewScoreboardModel(m.opts.Store, m.opts.Player, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		sb.embedded = true
		m.scores = &sb
		return m, sb.Init()
	case MenuQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openMenu() {
	m.drag.Cancel()
	m.menu.reset(m.game.CanUndo())
	m.view.SetMenuOpen(true)
}

func (m *Model) undo() {
	if err := m.game.Undo(); err != nil {
		m.report(err)
		return
	}
	m.setStatus("undone")
}

// report turns a refused action into a status line.
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrInvalidMove):
		// Nothing moved; the board already shows it.
	case errors.Is(err, session.ErrMoveInFlight), errors.Is(err, session.ErrCooldown):
	case errors.Is(err, history.ErrUndoDisabled):
		m.setStatus("undo is off")
	case errors.Is(err, history.ErrUndoExhausted):
		m.setStatus("undo already used, make a move first")
	case errors.Is(err, history.ErrNoHistory):
		m.setStatus("nothing to undo")
	default:
		m.setStatus(err.Error())
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAge = 0
}

// handleMouse feeds mouse input to the drag interpreter. A left drag is one
// pointer; a right drag stands in for a two-finger swipe and the wheel zooms.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.pointer(msg.X, msg.Y)
	twin := gesture.Point{X: p.X + twoFingerSpread, Y: p.Y}

	var ev gesture.Event
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view.Zoom(1.25)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.view.Zoom(0.8)
		return m, nil

	case msg.Action == tea.MouseActionRelease:
		ev = m.drag.PointerUp(p)
		m.rightDown = false

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.rightDown = true
		ev = m.drag.PointerDown(p, twin)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.view.MenuOpen() {
			return m, nil
		}
		ev = m.drag.PointerDown(p)

	case msg.Action == tea.MouseActionMotion && m.rightDown:
		ev = m.drag.PointerMove(p, twin)
	case msg.Action == tea.MouseActionMotion:
		ev = m.drag.PointerMove(p)
	}

	switch ev.Kind {
	case gesture.EventMove, gesture.EventUndo:
		m.report(ev.Err)
		if ev.Kind == gesture.EventUndo && ev.Err == nil {
			m.setStatus("undone")
		}
	case gesture.EventMenu:
		if m.view.MenuOpen() {
			m.menu.reset(m.game.CanUndo())
		}
	}
	return m, nil
}

// pointer converts a terminal cell to pointer units.
func (m Model) pointer(x, y int) gesture.Point {
	t := m.opts.Config.Terminal
	return gesture.Point{
		X: float64(x) * t.UnitsPerColumn,
		Y: float64(y) * t.UnitsPerRow,
	}
}

// handleResize processes window resize events. The game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.resize(msg.Width, msg.Height)
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.opts.Runtime.ScreenW = w
	m.opts.Runtime.ScreenH = h
	m.help.Width = w

	rows := 1
	if m.help.ShowAll {
		rows = len(m.keys.FullHelp()[0])
	}
	m.screen.Resize(w, core.Max(1, h-rows))
}

// handleTick advances the game's virtual clock and the animations by the
// real time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := now.Sub(m.lastTick)
	if dt < 0 {
		dt = 0
	}
	if dt > maxFrame {
		dt = maxFrame
	}
	m.lastTick = now

	m.queue.Advance(dt)
	m.view.Update(dt)

	if m.status != "" {
		m.statusAge += dt
		if m.statusAge > statusTTL {
			m.status = ""
		}
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}

	m.view.Draw(m.screen, m.status)
	if m.view.MenuOpen() {
		l := m.view.Layout(m.screen.Width(), m.screen.Height())
		m.menu.draw(m.screen, l.Origin)
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run plays in the local terminal until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
