package engine

import (
	"errors"
	"math/rand"
)

// Spawn probabilities. A single roll r in [0,1) decides the value: with lucky
// eights enabled r < LuckyChance yields LuckyValue; otherwise r < BaseChance
// yields the base value and anything above yields double the base.
const (
	BaseChance  = 0.9
	LuckyChance = 0.01
	LuckyValue  = 8
)

// ErrExhaustedGrid is the panic value raised when a tile must be spawned on a
// full board. A move that changed the grid always leaves an empty cell, so
// reaching it means the caller broke that ordering.
var ErrExhaustedGrid = errors.New("engine: spawn requested on a full grid")

// SpawnPolicy selects the spawn value distribution.
type SpawnPolicy struct {
	StartWithOnes bool
	LuckyEights   bool
}

// BaseValue returns the common spawn value under the policy.
func (p SpawnPolicy) BaseValue() int {
	if p.StartWithOnes {
		return 1
	}
	return 2
}

// Spawn describes a newly placed tile.
type Spawn struct {
	Row   int
	Col   int
	Value int
	Roll  float64 // The random draw that chose the value
}

// Spawner picks an empty cell and a value for new tiles.
type Spawner struct {
	rng    *rand.Rand
	policy SpawnPolicy
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, policy SpawnPolicy) *Spawner {
	return &Spawner{rng: rng, policy: policy}
}

// Policy returns the spawner's value policy.
func (s *Spawner) Policy() SpawnPolicy {
	return s.policy
}

// Spawn chooses a uniformly random empty cell and a value for it.
// Returns false if the grid has no empty cell.
func (s *Spawner) Spawn(g Grid) (Spawn, bool) {
	empty := EmptyCells(g)
	if len(empty) == 0 {
		return Spawn{}, false
	}

	cell := empty[s.rng.Intn(len(empty))]
	roll := s.rng.Float64()

	return Spawn{
		Row:   cell.Row,
		Col:   cell.Col,
		Value: s.policy.valueFor(roll),
		Roll:  roll,
	}, true
}

// valueFor maps a roll to a tile value.
func (p SpawnPolicy) valueFor(roll float64) int {
	base := p.BaseValue()
	switch {
	case p.LuckyEights && roll < LuckyChance:
		return LuckyValue
	case roll < BaseChance:
		return base
	default:
		return base * 2
	}
}
