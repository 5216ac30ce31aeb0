package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded defaults differ from DefaultGameConfig():\n%+v\nvs\n%+v", cfg, DefaultGameConfig())
	}
}

func TestParseOverridesOnlyNamedOptions(t *testing.T) {
	cfg, err := Parse([]byte("undo_levels: unlimited\nlucky_eights: true\ngesture:\n  commit_ratio: 1\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.UndoLevels != UndoUnlimited {
		t.Errorf("UndoLevels = %v, want unlimited", cfg.UndoLevels)
	}
	if !cfg.LuckyEights {
		t.Error("LuckyEights should be true")
	}
	if cfg.Gesture.CommitRatio != 1 {
		t.Errorf("CommitRatio = %v, want 1", cfg.Gesture.CommitRatio)
	}
	if cfg.DragSensitivity != 6 {
		t.Errorf("DragSensitivity = %v, want default 6", cfg.DragSensitivity)
	}
	if cfg.Gesture.CellStride != 82 {
		t.Errorf("CellStride = %v, want default 82", cfg.Gesture.CellStride)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"undo levels", "undo_levels: 3\n"},
		{"sensitivity", "drag_sensitivity: 0\n"},
		{"commit ratio", "gesture:\n  commit_ratio: 1.5\n"},
		{"cooldown", "move_cooldown_ms: -1\n"},
		{"double tap window", "gesture:\n  double_tap_min_ms: 400\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.yaml)
			}
		})
	}
}

func TestUndoLevelsRoundTrip(t *testing.T) {
	for _, u := range []UndoLevels{UndoDisabled, UndoSingle, UndoUnlimited} {
		cfg := DefaultGameConfig()
		cfg.UndoLevels = u

		data, err := Marshal(cfg)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		got, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse(Marshal(%v)) failed: %v", u, err)
		}
		if got.UndoLevels != u {
			t.Errorf("UndoLevels = %v, want %v", got.UndoLevels, u)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(path, []byte("start_with_ones: true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.StartWithOnes {
		t.Error("StartWithOnes should be true")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing custom path should fail")
	} else if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should name the file, got %v", err)
	}
}
