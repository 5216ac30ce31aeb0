// Package config provides YAML-based game configuration loading and
// validation. A configuration is resolved once per session and handed to the
// components that need it.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// UndoLevels is the undo budget per game: 0, 1 or unlimited.
type UndoLevels int

const (
	UndoUnlimited UndoLevels = -1
	UndoDisabled  UndoLevels = 0
	UndoSingle    UndoLevels = 1
)

// String returns the value as written in config files.
func (u UndoLevels) String() string {
	if u == UndoUnlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", int(u))
}

// MarshalYAML implements yaml.Marshaler.
func (u UndoLevels) MarshalYAML() (any, error) {
	if u == UndoUnlimited {
		return "unlimited", nil
	}
	return int(u), nil
}

// UnmarshalYAML accepts 0, 1 or "unlimited".
func (u *UndoLevels) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "unlimited":
		*u = UndoUnlimited
	case "0":
		*u = UndoDisabled
	case "1":
		*u = UndoSingle
	default:
		return fmt.Errorf("undo_levels: want 0, 1 or \"unlimited\", got %q", value.Value)
	}
	return nil
}

// GameConfig contains all player-facing options.
type GameConfig struct {
	DragSensitivity  float64        `yaml:"drag_sensitivity"`
	UndoLevels       UndoLevels     `yaml:"undo_levels"`
	MoveCooldownMs   int            `yaml:"move_cooldown_ms"`
	AnimationSpeedMs int            `yaml:"animation_speed_ms"`
	SettleDelayMs    int            `yaml:"settle_delay_ms"` // Pause between merge cleanup and spawn
	StartWithOnes    bool           `yaml:"start_with_ones"`
	LuckyEights      bool           `yaml:"lucky_eights"`
	DoubleTapUndo    bool           `yaml:"double_tap_undo"`
	TwoFingerMenu    bool           `yaml:"two_finger_menu"`
	Gesture          GestureConfig  `yaml:"gesture"`
	Terminal         TerminalConfig `yaml:"terminal"`
}

// GestureConfig holds the drag interpretation thresholds. Distances are in
// pointer units (pixels on a touch screen).
type GestureConfig struct {
	NoiseThreshold     float64 `yaml:"noise_threshold"`   // Scaled movement ignored below this
	CommitRatio        float64 `yaml:"commit_ratio"`      // Preview ratio that executes a move
	RearmDistance      float64 `yaml:"rearm_distance"`    // Raw movement before a new direction is considered
	ReleaseThreshold   float64 `yaml:"release_threshold"` // Raw displacement for a discrete swipe on release
	CellStride         float64 `yaml:"cell_stride"`       // Cell size plus gap
	DoubleTapWindowMs  int     `yaml:"double_tap_window_ms"`
	DoubleTapMinMs     int     `yaml:"double_tap_min_ms"`
	TwoFingerThreshold float64 `yaml:"two_finger_threshold"` // Change needed to classify pinch vs swipe
	MenuSwipeThreshold float64 `yaml:"menu_swipe_threshold"`
}

// TerminalConfig adapts pointer gestures and presentation to a terminal.
type TerminalConfig struct {
	UnitsPerColumn  float64 `yaml:"units_per_column"` // Pointer units per terminal column
	UnitsPerRow     float64 `yaml:"units_per_row"`    // Pointer units per terminal row
	GameOverDelayMs int     `yaml:"game_over_delay_ms"`
	DarkMode        bool    `yaml:"dark_mode"`
}

// AnimationDelay returns the slide/merge animation duration.
func (c GameConfig) AnimationDelay() time.Duration {
	return time.Duration(c.AnimationSpeedMs) * time.Millisecond
}

// SettleDelay returns the pause between merge cleanup and spawning.
func (c GameConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// MoveCooldown returns the minimum time between moves.
func (c GameConfig) MoveCooldown() time.Duration {
	return time.Duration(c.MoveCooldownMs) * time.Millisecond
}

// Validate checks every option and reports all problems at once.
func (c GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.DragSensitivity > 0, "drag_sensitivity must be positive, got %v", c.DragSensitivity)
	check(c.UndoLevels >= UndoUnlimited && c.UndoLevels <= UndoSingle,
		"undo_levels must be 0, 1 or unlimited, got %d", int(c.UndoLevels))
	check(c.MoveCooldownMs >= 0, "move_cooldown_ms must not be negative, got %d", c.MoveCooldownMs)
	check(c.AnimationSpeedMs >= 0, "animation_speed_ms must not be negative, got %d", c.AnimationSpeedMs)
	check(c.SettleDelayMs >= 0, "settle_delay_ms must not be negative, got %d", c.SettleDelayMs)

	g := c.Gesture
	check(g.NoiseThreshold >= 0, "gesture.noise_threshold must not be negative")
	check(g.CommitRatio > 0 && g.CommitRatio <= 1, "gesture.commit_ratio must be in (0, 1], got %v", g.CommitRatio)
	check(g.RearmDistance >= 0, "gesture.rearm_distance must not be negative")
	check(g.ReleaseThreshold > 0, "gesture.release_threshold must be positive")
	check(g.CellStride > 0, "gesture.cell_stride must be positive")
	check(g.DoubleTapMinMs >= 0 && g.DoubleTapMinMs < g.DoubleTapWindowMs,
		"gesture.double_tap_min_ms must be below double_tap_window_ms")
	check(g.TwoFingerThreshold >= 0, "gesture.two_finger_threshold must not be negative")
	check(g.MenuSwipeThreshold > 0, "gesture.menu_swipe_threshold must be positive")

	check(c.Terminal.UnitsPerColumn > 0, "terminal.units_per_column must be positive")
	check(c.Terminal.UnitsPerRow > 0, "terminal.units_per_row must be positive")
	check(c.Terminal.GameOverDelayMs >= 0, "terminal.game_over_delay_ms must not be negative")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid game config: %w", errors.Join(errs...))
	}
	return nil
}
