package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		DragSensitivity:  6,
		UndoLevels:       UndoSingle,
		MoveCooldownMs:   0,
		AnimationSpeedMs: 50,
		SettleDelayMs:    50,
		StartWithOnes:    false,
		LuckyEights:      false,
		DoubleTapUndo:    true,
		TwoFingerMenu:    true,
		Gesture: GestureConfig{
			NoiseThreshold:     10,
			CommitRatio:        0.9,
			RearmDistance:      30,
			ReleaseThreshold:   50,
			CellStride:         82, // 70 cell + 12 gap
			DoubleTapWindowMs:  300,
			DoubleTapMinMs:     50,
			TwoFingerThreshold: 10,
			MenuSwipeThreshold: 50,
		},
		Terminal: TerminalConfig{
			UnitsPerColumn:  8,
			UnitsPerRow:     16,
			GameOverDelayMs: 300,
			DarkMode:        true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultGameYAML
}
