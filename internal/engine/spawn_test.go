package engine

import (
	"math/rand"
	"testing"
)

func TestSpawnValue(t *testing.T) {
	tests := []struct {
		name   string
		policy SpawnPolicy
		roll   float64
		want   int
	}{
		{"base", SpawnPolicy{}, 0.5, 2},
		{"double", SpawnPolicy{}, 0.95, 4},
		{"low roll without lucky", SpawnPolicy{}, 0.005, 2},
		{"ones base", SpawnPolicy{StartWithOnes: true}, 0.2, 1},
		{"ones double", SpawnPolicy{StartWithOnes: true}, 0.91, 2},
		{"lucky eight", SpawnPolicy{LuckyEights: true}, 0.005, 8},
		{"lucky miss", SpawnPolicy{LuckyEights: true}, 0.02, 2},
		{"lucky with ones", SpawnPolicy{StartWithOnes: true, LuckyEights: true}, 0.001, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.valueFor(tt.roll); got != tt.want {
				t.Errorf("valueFor(%v) = %d, want %d", tt.roll, got, tt.want)
			}
		})
	}
}

func TestSpawnOnlyEmptyCells(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)), SpawnPolicy{})
	g := Grid{
		{2, 4, 8, 16},
		{32, 0, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}

	for range 50 {
		sp, ok := s.Spawn(g)
		if !ok {
			t.Fatal("Spawn should succeed with one empty cell")
		}
		if sp.Row != 1 || sp.Col != 1 {
			t.Fatalf("Spawn at (%d,%d), want (1,1)", sp.Row, sp.Col)
		}
	}
}

func TestSpawnFullGrid(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)), SpawnPolicy{})
	g := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}

	if _, ok := s.Spawn(g); ok {
		t.Error("Spawn on a full grid should report no cell")
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewSource(12345)), SpawnPolicy{})
	b := NewSpawner(rand.New(rand.NewSource(12345)), SpawnPolicy{})

	var g Grid
	for range 10 {
		sa, _ := a.Spawn(g)
		sb, _ := b.Spawn(g)
		if sa != sb {
			t.Fatalf("same seed should give same spawn: %+v vs %+v", sa, sb)
		}
		g[sa.Row][sa.Col] = sa.Value
	}
}

func TestSpawnDistribution(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(99)), SpawnPolicy{LuckyEights: true})
	counts := make(map[int]int)
	var g Grid
	const n = 20000
	for range n {
		sp, _ := s.Spawn(g)
		counts[sp.Value]++
	}

	if c := counts[8]; c < n/200 || c > n/50 {
		t.Errorf("lucky eights = %d of %d, want about 1%%", c, n)
	}
	if c := counts[4]; c < n/20 || c > n/5 {
		t.Errorf("fours = %d of %d, want about 10%%", c, n)
	}
}
