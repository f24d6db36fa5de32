package mcts_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/mcts"
	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
)

func newTestSim() simgame.Simulator {
	return simgame.NewReference(simgame.ReferenceConfig{Width: 20, Height: 20, TickCap: 1500})
}

func TestSearchRespectsBudget(t *testing.T) {
	sim := newTestSim()
	cfg := mcts.DefaultConfig()
	cfg.Budget = 200 * time.Millisecond
	rng := rand.New(rand.NewSource(1))

	start := time.Now()
	action, iterations := mcts.Search(sim, simgame.Owner0, cfg, defaultPriorTable(), evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights(), rng)
	elapsed := time.Since(start)

	assert.LessOrEqual(t, elapsed, 250*time.Millisecond)
	assert.Greater(t, iterations, 0)
	_ = action // an empty action is a legal outcome; the budget bound is what's tested
}

func TestSearchReturnsEmptyActionWhenNoLegalMoves(t *testing.T) {
	sim := newTestSim()
	// Strip owner0's units so it has nothing to do.
	state := sim.State()
	filtered := state.Units[:0]
	for _, u := range state.Units {
		if u.Owner != simgame.Owner0 {
			filtered = append(filtered, u)
		}
	}
	state.Units = filtered

	cfg := mcts.DefaultConfig()
	cfg.Budget = 20 * time.Millisecond
	rng := rand.New(rand.NewSource(2))

	action, _ := mcts.Search(sim, simgame.Owner0, cfg, defaultPriorTable(), evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights(), rng)
	assert.True(t, action.Empty())
}

func defaultPriorTable() priors.Table {
	return priors.NewCache(nil, nil, nil).Snapshot()
}

func TestSearchProducesNonZeroVisitCountsByBudget(t *testing.T) {
	sim := newTestSim()
	cfg := mcts.DefaultConfig()
	cfg.Budget = 150 * time.Millisecond
	rng := rand.New(rand.NewSource(3))

	action, _ := mcts.Search(sim, simgame.Owner0, cfg, defaultPriorTable(), evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights(), rng)
	require.False(t, action.Empty())
}
