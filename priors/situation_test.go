package priors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
)

func stateWithResourceAt(pos simgame.Point) *simgame.GameState {
	return &simgame.GameState{
		Units: []simgame.Unit{
			{ID: 1, Owner: simgame.OwnerNeutral, Kind: simgame.UnitStockpile, Pos: pos},
		},
		Resources: [2]int{100, 100},
	}
}

func TestClassifyWorkerCarrying(t *testing.T) {
	state := stateWithResourceAt(simgame.Point{X: 50, Y: 50})
	unit := simgame.Unit{ID: 2, Owner: simgame.Owner0, Kind: simgame.UnitHarvester, Pos: simgame.Point{X: 0, Y: 0}, Carrying: 5}
	assert.Equal(t, priors.SituationWorkerCarrying, priors.Classify(state, unit))
}

func TestClassifyWorkerNearResource(t *testing.T) {
	state := stateWithResourceAt(simgame.Point{X: 2, Y: 0})
	unit := simgame.Unit{ID: 2, Owner: simgame.Owner0, Kind: simgame.UnitHarvester, Pos: simgame.Point{X: 0, Y: 0}}
	assert.Equal(t, priors.SituationWorkerNearResource, priors.Classify(state, unit))
}

func TestClassifyWorkerIdle(t *testing.T) {
	state := stateWithResourceAt(simgame.Point{X: 50, Y: 50})
	unit := simgame.Unit{ID: 2, Owner: simgame.Owner0, Kind: simgame.UnitHarvester, Pos: simgame.Point{X: 0, Y: 0}}
	assert.Equal(t, priors.SituationWorkerIdle, priors.Classify(state, unit))
}

func TestClassifyMilitaryInCombat(t *testing.T) {
	state := &simgame.GameState{
		Units: []simgame.Unit{
			{ID: 1, Owner: simgame.Owner1, Kind: simgame.UnitAttacker, Pos: simgame.Point{X: 3, Y: 0}},
		},
	}
	unit := simgame.Unit{ID: 2, Owner: simgame.Owner0, Kind: simgame.UnitAttacker, Pos: simgame.Point{X: 0, Y: 0}}
	assert.Equal(t, priors.SituationMilitaryInCombat, priors.Classify(state, unit))
}

func TestClassifyMilitaryNotInCombat(t *testing.T) {
	state := &simgame.GameState{
		Units: []simgame.Unit{
			{ID: 1, Owner: simgame.Owner1, Kind: simgame.UnitAttacker, Pos: simgame.Point{X: 50, Y: 50}},
		},
	}
	unit := simgame.Unit{ID: 2, Owner: simgame.Owner0, Kind: simgame.UnitAttacker, Pos: simgame.Point{X: 0, Y: 0}}
	assert.Equal(t, priors.SituationMilitaryNotCombat, priors.Classify(state, unit))
}

func TestClassifyBaseLowResources(t *testing.T) {
	state := &simgame.GameState{Resources: [2]int{10, 100}}
	unit := simgame.Unit{ID: 1, Owner: simgame.Owner0, Kind: simgame.UnitStockpile}
	assert.Equal(t, priors.SituationBaseLowResources, priors.Classify(state, unit))
}

func TestClassifyBaseEconomy(t *testing.T) {
	state := &simgame.GameState{Resources: [2]int{200, 100}}
	unit := simgame.Unit{ID: 1, Owner: simgame.Owner0, Kind: simgame.UnitStockpile}
	assert.Equal(t, priors.SituationBaseEconomy, priors.Classify(state, unit))
}

func TestClassifyBarracks(t *testing.T) {
	state := &simgame.GameState{}
	unit := simgame.Unit{ID: 1, Owner: simgame.Owner0, Kind: simgame.UnitProducer}
	assert.Equal(t, priors.SituationBarracks, priors.Classify(state, unit))
}
