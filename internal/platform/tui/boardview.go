package tui

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/dark2048/internal/config"
	"github.com/vovakirdan/dark2048/internal/core"
	"github.com/vovakirdan/dark2048/internal/engine"
	"github.com/vovakirdan/dark2048/internal/gesture"
)

const (
	spawnFlash = 150 * time.Millisecond
	mergeFlash = 200 * time.Millisecond
	headerRows = 2
)

// sprite is a tile as drawn, possibly halfway between two cells.
type sprite struct {
	id       engine.TileID
	value    int
	at       gesture.Position
	from, to gesture.Position
	slide    *gween.Tween
	settle   int  // Value shown once the slide ends, 0 keeps the current one
	absorbed bool // Removed once the slide ends
	flash    time.Duration
}

// finish jumps to the end of the slide. It reports whether the sprite
// should be removed.
func (s *sprite) finish() bool {
	s.slide = nil
	s.at = s.to
	if s.absorbed {
		return true
	}
	if s.settle > 0 {
		s.value = s.settle
		s.settle = 0
		s.flash = mergeFlash
	}
	return false
}

// BoardView draws the board and animates it. It is the game's
// session.Renderer and the gesture.View of the drag interpreter.
type BoardView struct {
	dark      bool
	overDelay time.Duration

	sprites map[engine.TileID]*sprite
	preview map[engine.TileID]gesture.Position

	score int
	high  int

	over       bool
	finalScore int
	overIn     time.Duration // Time left before the game over overlay shows

	menuOpen bool
	compact  bool
}

// NewBoardView creates an empty board view.
func NewBoardView(cfg config.GameConfig) *BoardView {
	return &BoardView{
		dark:      cfg.Terminal.DarkMode,
		overDelay: time.Duration(cfg.Terminal.GameOverDelayMs) * time.Millisecond,
		sprites:   make(map[engine.TileID]*sprite),
	}
}

// OnTileSpawned adds a tile with a short highlight.
func (v *BoardView) OnTileSpawned(t engine.Tile) {
	pos := gesture.Position{Row: float64(t.Row), Col: float64(t.Col)}
	v.sprites[t.ID] = &sprite{
		id:    t.ID,
		value: t.Value,
		at:    pos,
		from:  pos,
		to:    pos,
		flash: spawnFlash,
	}
}

// OnMovementsComputed starts the slide of every tile in moves. Merged tiles
// double and flash when they arrive; absorbed tiles disappear.
func (v *BoardView) OnMovementsComputed(moves []engine.Movement, mergeDelay time.Duration) {
	v.preview = nil
	v.finishAll()

	for _, m := range moves {
		sp, ok := v.sprites[m.TileID]
		if !ok {
			sp = &sprite{id: m.TileID, value: m.Value}
			v.sprites[m.TileID] = sp
		}
		sp.from = gesture.Position{Row: float64(m.FromRow), Col: float64(m.FromCol)}
		sp.to = gesture.Position{Row: float64(m.ToRow), Col: float64(m.ToCol)}
		sp.at = sp.from
		sp.absorbed = m.Absorbed
		if m.Merged {
			sp.settle = m.Value * 2
		}

		if mergeDelay <= 0 {
			if sp.finish() {
				delete(v.sprites, m.TileID)
			}
			continue
		}
		sp.slide = gween.New(0, 1, float32(mergeDelay.Seconds()), ease.OutQuad)
	}
}

// OnScoreChanged updates the header.
func (v *BoardView) OnScoreChanged(score, highScore int) {
	v.score = score
	v.high = highScore
}

// OnGameOver shows the game over overlay after the configured delay.
func (v *BoardView) OnGameOver(finalScore int) {
	v.over = true
	v.finalScore = finalScore
	v.overIn = v.overDelay
}

// OnStateRestored replaces every tile without animation.
func (v *BoardView) OnStateRestored(tiles []engine.Tile) {
	v.sprites = make(map[engine.TileID]*sprite, len(tiles))
	v.preview = nil
	v.over = false
	v.overIn = 0
	for _, t := range tiles {
		pos := gesture.Position{Row: float64(t.Row), Col: float64(t.Col)}
		v.sprites[t.ID] = &sprite{id: t.ID, value: t.Value, at: pos, from: pos, to: pos}
	}
}

// PreviewTiles shows tiles at fractional positions during a drag.
func (v *BoardView) PreviewTiles(pos map[engine.TileID]gesture.Position) {
	v.preview = make(map[engine.TileID]gesture.Position, len(pos))
	for id, p := range pos {
		v.preview[id] = p
	}
}

// ResetTiles drops the drag preview.
func (v *BoardView) ResetTiles() {
	v.preview = nil
}

// ToggleMenu opens or closes the in-game menu.
func (v *BoardView) ToggleMenu() {
	v.menuOpen = !v.menuOpen
}

// Zoom switches between the full and the compact board.
func (v *BoardView) Zoom(factor float64) {
	switch {
	case factor > 1.1:
		v.compact = false
	case factor < 0.9:
		v.compact = true
	}
}

// MenuOpen reports whether the in-game menu is showing.
func (v *BoardView) MenuOpen() bool { return v.menuOpen }

// SetMenuOpen shows or hides the in-game menu.
func (v *BoardView) SetMenuOpen(open bool) { v.menuOpen = open }

// Compact reports whether the board uses single-row cells.
func (v *BoardView) Compact() bool { return v.compact }

// Animating reports whether any tile is still sliding.
func (v *BoardView) Animating() bool {
	for _, sp := range v.sprites {
		if sp.slide != nil {
			return true
		}
	}
	return false
}

// GameOverShown reports whether the game over overlay is visible.
func (v *BoardView) GameOverShown() bool {
	return v.over && v.overIn <= 0
}

// Update advances animations by dt.
func (v *BoardView) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	for id, sp := range v.sprites {
		if sp.slide != nil {
			p, done := sp.slide.Update(step)
			sp.at = gesture.Position{
				Row: core.Lerp(sp.from.Row, sp.to.Row, float64(p)),
				Col: core.Lerp(sp.from.Col, sp.to.Col, float64(p)),
			}
			if done && sp.finish() {
				delete(v.sprites, id)
				continue
			}
		}
		if sp.flash > 0 {
			sp.flash -= dt
		}
	}
	if v.overIn > 0 {
		v.overIn -= dt
	}
}

func (v *BoardView) finishAll() {
	for id, sp := range v.sprites {
		if sp.slide != nil && sp.finish() {
			delete(v.sprites, id)
		}
	}
}

// Layout returns the board placement for a screen of w×h cells.
func (v *BoardView) Layout(w, h int) core.BoardLayout {
	l := core.NewBoardLayout(w, h, engine.Size, headerRows)
	if v.compact {
		l = l.Compact(w, headerRows)
	}
	return l
}

// Draw renders the header, the board and the game over overlay.
func (v *BoardView) Draw(s *core.Screen, status string) {
	s.Clear()
	l := v.Layout(s.Width(), s.Height())

	v.drawHeader(s, l, status)
	s.DrawBox(l.Origin, core.ColorDim)

	empty := core.TileColors(0, v.dark)
	for r := range engine.Size {
		for c := range engine.Size {
			s.FillRect(l.CellRect(float64(r), float64(c)), ' ', empty.FG, empty.BG)
		}
	}

	for _, sp := range v.drawOrder() {
		pos := sp.at
		if p, ok := v.preview[sp.id]; ok {
			pos = p
		}
		v.drawTile(s, l.CellRect(pos.Row, pos.Col), sp)
	}

	if v.GameOverShown() {
		v.drawGameOver(s, l)
	}
}

// drawOrder puts absorbed tiles below the tiles they merge into.
func (v *BoardView) drawOrder() []*sprite {
	out := make([]*sprite, 0, len(v.sprites))
	for _, sp := range v.sprites {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].absorbed != out[j].absorbed {
			return out[i].absorbed
		}
		return out[i].id < out[j].id
	})
	return out
}

func (v *BoardView) drawTile(s *core.Screen, r core.Rect, sp *sprite) {
	st := core.TileColors(sp.value, v.dark)
	fg := st.FG
	if sp.flash > 0 {
		fg = core.ColorYellow
	}
	s.FillRect(r, ' ', fg, st.BG)

	label := strconv.Itoa(sp.value)
	if len(label) > r.W {
		label = label[:r.W]
	}
	x := r.X + (r.W-len(label))/2
	y := r.Y + r.H/2
	s.DrawStyledText(x, y, label, fg, st.BG)
}

func (v *BoardView) drawHeader(s *core.Screen, l core.BoardLayout, status string) {
	x := l.Origin.X
	s.DrawStyledText(x, 0, "2048", core.ColorOrange, core.ColorDefault)

	scores := fmt.Sprintf("SCORE %d  BEST %d", v.score, v.high)
	s.DrawStyledText(l.Origin.Right()-len(scores), 0, scores, core.ColorWhite, core.ColorDefault)

	if status != "" {
		s.DrawStyledText(x, 1, status, core.ColorGray, core.ColorDefault)
	}
}

func (v *BoardView) drawGameOver(s *core.Screen, l core.BoardLayout) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("score %d", v.finalScore),
		"u undo   n new game",
	}

	w := 0
	for _, line := range lines {
		w = core.Max(w, len(line))
	}
	w += 4
	h := len(lines) + 2

	cx, cy := l.Origin.Center()
	box := core.NewRect(cx-w/2, cy-h/2, w, h)
	s.FillRect(box, ' ', core.ColorWhite, core.ColorBlack)
	s.DrawBox(box, core.ColorRed)
	for i, line := range lines {
		fg := core.ColorWhite
		if i == 0 {
			fg = core.ColorRed
		}
		s.DrawStyledText(box.X+(w-len(line))/2, box.Y+1+i, line, fg, core.ColorBlack)
	}
}
