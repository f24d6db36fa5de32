package evaluation

import (
	"math"

	"github.com/llmrts/arena/simgame"
)

// carryingBonus is the per-carried-resource contribution a harvester adds on
// top of its unit-cost term.
const carryingBonus = 10.0

// resourceScore is the per-stockpiled-resource coefficient of the base
// material score.
const resourceScore = 20.0

// materialScore computes the base material score for one side:
// resources×20 + Σ (unit_cost × √(hp/max_hp)) × unit_weight, plus +10 per
// carried resource.
func materialScore(state *simgame.GameState, owner simgame.Owner, weights Weights) float64 {
	score := float64(state.Resources[owner]) * resourceScore

	for _, unit := range state.Units {
		if unit.Owner != owner {
			continue
		}
		score += float64(unit.Cost) * healthFraction(unit) * unitWeight(unit.Kind, weights)
		if unit.Kind == simgame.UnitHarvester {
			score += float64(unit.Carrying) * carryingBonus
		}
	}
	return score
}

// healthFraction returns √(hp/max_hp), treating a unit with MaxHP==0 (should
// not occur for a live unit) as full health to avoid dividing by zero.
func healthFraction(unit simgame.Unit) float64 {
	if unit.MaxHP <= 0 {
		return 1.0
	}
	fraction := float64(unit.HP) / float64(unit.MaxHP)
	if fraction < 0 {
		fraction = 0
	}
	return math.Sqrt(fraction)
}

// unitWeight is the economy/military/building multiplier assigned by unit
// kind.
func unitWeight(kind simgame.UnitKind, weights Weights) float64 {
	switch kind {
	case simgame.UnitHarvester:
		return weights.EconomyMultiplier
	case simgame.UnitAttacker:
		return weights.MilitaryMultiplier
	default:
		return 1.0
	}
}

// militaryStrength sums the attacker unit count for owner, used by both the
// build-army/defend goal bonuses and the target=army refinement.
func militaryStrength(state *simgame.GameState, owner simgame.Owner) int {
	count := 0
	for _, unit := range state.Units {
		if unit.Owner == owner && unit.Kind == simgame.UnitAttacker {
			count++
		}
	}
	return count
}

// workerCount returns owner's live harvester count.
func workerCount(state *simgame.GameState, owner simgame.Owner) int {
	count := 0
	for _, unit := range state.Units {
		if unit.Owner == owner && unit.Kind == simgame.UnitHarvester {
			count++
		}
	}
	return count
}

// barracksCount returns owner's live producer count.
func barracksCount(state *simgame.GameState, owner simgame.Owner) int {
	count := 0
	for _, unit := range state.Units {
		if unit.Owner == owner && unit.Kind == simgame.UnitProducer {
			count++
		}
	}
	return count
}

// baseOf returns owner's stockpile unit (the "base"), if it still exists.
func baseOf(state *simgame.GameState, owner simgame.Owner) (simgame.Unit, bool) {
	for _, unit := range state.Units {
		if unit.Owner == owner && unit.Kind == simgame.UnitStockpile {
			return unit, true
		}
	}
	return simgame.Unit{}, false
}
