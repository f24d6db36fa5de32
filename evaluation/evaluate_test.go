package evaluation_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/simgame"
)

func symmetricState() *simgame.GameState {
	return &simgame.GameState{
		Resources: [2]int{100, 100},
		Units: []simgame.Unit{
			{ID: 0, Owner: simgame.Owner0, Kind: simgame.UnitStockpile, HP: 500, MaxHP: 500, Cost: 400},
			{ID: 1, Owner: simgame.Owner1, Kind: simgame.UnitStockpile, HP: 500, MaxHP: 500, Cost: 400},
			{ID: 2, Owner: simgame.Owner0, Kind: simgame.UnitHarvester, HP: 50, MaxHP: 50, Cost: 50},
			{ID: 3, Owner: simgame.Owner1, Kind: simgame.UnitHarvester, HP: 50, MaxHP: 50, Cost: 50},
		},
	}
}

func TestEvaluateSymmetricStateWithNoGoalsIsZero(t *testing.T) {
	state := symmetricState()
	v := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights())
	assert.InDelta(t, 0, v, 1e-9)
}

func TestEvaluateZeroBothSidesIsZero(t *testing.T) {
	state := &simgame.GameState{}
	v := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights())
	assert.Equal(t, 0.0, v)
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	state := symmetricState()
	// Give owner0 a second harvester; owner0 should now score above zero.
	state.Units = append(state.Units, simgame.Unit{ID: 4, Owner: simgame.Owner0, Kind: simgame.UnitHarvester, HP: 50, MaxHP: 50, Cost: 50})

	v := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights())
	assert.Greater(t, v, 0.0)

	vSwapped := evaluation.Evaluate(state, simgame.Owner1, simgame.Owner0, evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights())
	assert.Less(t, vSwapped, 0.0)
}

func TestEvaluateSymmetricWithoutGoalsIsAdditiveInverse(t *testing.T) {
	state := symmetricState()
	state.Units[2].HP = 25 // damage owner0's harvester

	a := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights())
	b := evaluation.Evaluate(state, simgame.Owner1, simgame.Owner0, evaluation.Goals{}, evaluation.TargetNone, evaluation.DefaultWeights())
	assert.InDelta(t, a, -b, 1e-9)
}

func TestEvaluateDestroyedEnemyBaseGivesLargeAttackBaseBonus(t *testing.T) {
	state := symmetricState()
	state.Resources = [2]int{0, 0}
	state.Units = []simgame.Unit{state.Units[0], state.Units[2], state.Units[3]} // drop owner1's stockpile

	goals := evaluation.Goals{Primary: evaluation.GoalAttackBase}
	v := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, goals, evaluation.TargetNone, evaluation.DefaultWeights())
	assert.Greater(t, v, 0.5)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	state := symmetricState()
	goals := evaluation.Goals{Primary: evaluation.GoalBuildArmy, Secondary: evaluation.GoalDefend}
	first := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, goals, evaluation.TargetArmy, evaluation.DefaultWeights())
	second := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, goals, evaluation.TargetArmy, evaluation.DefaultWeights())
	assert.Equal(t, first, second)
}

func TestEvaluateAlwaysWithinBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	goalOptions := []evaluation.StrategicGoal{
		evaluation.GoalExpandEconomy, evaluation.GoalBuildArmy, evaluation.GoalAttackBase,
		evaluation.GoalAttackWorkers, evaluation.GoalDefend, evaluation.GoalControlResources,
	}
	targetOptions := []evaluation.Target{evaluation.TargetNone, evaluation.TargetBase, evaluation.TargetWorkers, evaluation.TargetArmy}

	properties.Property("evaluate stays within [-1, 1]", prop.ForAll(
		func(ownerHarvesters, opponentHarvesters, ownerAttackers, opponentAttackers, goalIdx, targetIdx int) bool {
			state := &simgame.GameState{Resources: [2]int{100, 40}}
			id := 0
			spawn := func(owner simgame.Owner, kind simgame.UnitKind, n int) {
				for i := 0; i < n; i++ {
					state.Units = append(state.Units, simgame.Unit{
						ID: id, Owner: owner, Kind: kind, HP: 40, MaxHP: 40, Cost: 50,
					})
					id++
				}
			}
			spawn(simgame.Owner0, simgame.UnitHarvester, ownerHarvesters)
			spawn(simgame.Owner1, simgame.UnitHarvester, opponentHarvesters)
			spawn(simgame.Owner0, simgame.UnitAttacker, ownerAttackers)
			spawn(simgame.Owner1, simgame.UnitAttacker, opponentAttackers)
			state.Units = append(state.Units,
				simgame.Unit{ID: id, Owner: simgame.Owner0, Kind: simgame.UnitStockpile, HP: 300, MaxHP: 500, Cost: 400})
			id++
			state.Units = append(state.Units,
				simgame.Unit{ID: id, Owner: simgame.Owner1, Kind: simgame.UnitStockpile, HP: 200, MaxHP: 500, Cost: 400})

			goals := evaluation.Goals{Primary: goalOptions[goalIdx%len(goalOptions)], Secondary: goalOptions[(goalIdx+1)%len(goalOptions)]}
			target := targetOptions[targetIdx%len(targetOptions)]

			v := evaluation.Evaluate(state, simgame.Owner0, simgame.Owner1, goals, target, evaluation.DefaultWeights())
			return v >= -1 && v <= 1
		},
		gen.IntRange(0, 8), gen.IntRange(0, 8), gen.IntRange(0, 8), gen.IntRange(0, 8),
		gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}
