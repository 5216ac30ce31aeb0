package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/dark2048/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	if got, want := RenderScreen(s), s.String(); got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestRenderScreenKeepsStyledText(t *testing.T) {
	s := core.NewScreen(10, 1)
	s.DrawStyledText(0, 0, "2048", core.ColorWhite, 178)
	s.DrawStyledText(5, 0, "64", core.ColorRed, core.ColorDefault)

	out := RenderScreen(s)
	for _, want := range []string{"2048", "64"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
}

func TestStyleCacheReusesStyles(t *testing.T) {
	c := styleCache{}
	c.style(core.ColorWhite, 239)
	c.style(core.ColorWhite, 239)
	c.style(core.ColorRed, core.ColorDefault)

	if len(c) != 2 {
		t.Errorf("cache size = %d, want 2", len(c))
	}
}
