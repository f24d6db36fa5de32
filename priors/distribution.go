package priors

import "github.com/llmrts/arena/simgame"

// Distribution is a normalized probability mass over a unit's legal actions,
// indexed by position within the slice of legal actions passed to Evaluate.
type Distribution []float64

// positional adjustment multipliers applied on top of a situation's base
// action weights.
const (
	adjustMoveTowardEnemy = 1.5
	adjustMoveTowardResource = 1.5
	adjustAttackStockpile = 2.0
	adjustAttackHarvester = 1.5
	adjustProduceHarvester = 1.2
	adjustProduceCombat = 1.3
)

// Evaluate computes the prior distribution over unit's legal actions in
// state, using table's situation weights plus positional adjustments. If
// every weight collapses to zero, Evaluate falls back to a uniform
// distribution over legal.
func Evaluate(table Table, state *simgame.GameState, unit simgame.Unit, legal []simgame.Action) Distribution {
	if len(legal) == 0 {
		return nil
	}
	situation := Classify(state, unit)

	raw := make([]float64, len(legal))
	total := 0.0
	for i, action := range legal {
		w := table.weightFor(situation, action.Kind)
		w *= positionalMultiplier(situation, state, unit, action)
		raw[i] = w
		total += w
	}

	if total <= 0 {
		uniform := 1.0 / float64(len(legal))
		for i := range raw {
			raw[i] = uniform
		}
		return raw
	}

	for i := range raw {
		raw[i] /= total
	}
	return raw
}

func positionalMultiplier(situation Situation, state *simgame.GameState, unit simgame.Unit, action simgame.Action) float64 {
	switch action.Kind {
	case simgame.ActionMove:
		if situation == SituationMilitaryNotCombat {
			if _, dist, ok := state.NearestEnemy(unit.Owner, unit.Pos); ok {
				if _, nextDist, nextOk := state.NearestEnemy(unit.Owner, action.Target); nextOk && nextDist < dist {
					return adjustMoveTowardEnemy
				}
			}
		}
		if situation == SituationWorkerIdle {
			if _, dist, ok := state.NearestResource(unit.Pos); ok {
				if _, nextDist, nextOk := state.NearestResource(action.Target); nextOk && nextDist < dist {
					return adjustMoveTowardResource
				}
			}
		}
		return 1.0

	case simgame.ActionAttack:
		if target, ok := state.UnitByID(targetUnitID(state, action.Target)); ok {
			switch target.Kind {
			case simgame.UnitStockpile:
				return adjustAttackStockpile
			case simgame.UnitHarvester:
				return adjustAttackHarvester
			}
		}
		return 1.0

	case simgame.ActionProduce:
		if situation == SituationBaseEconomy {
			switch action.Param {
			case "harvester":
				return adjustProduceHarvester
			case "attacker":
				return adjustProduceCombat
			}
		}
		return 1.0

	default:
		return 1.0
	}
}

// targetUnitID resolves the unit occupying pos, returning -1 if none. Attack
// actions target a grid cell (simgame.Action.Target); this looks up the
// occupant so positional adjustments can inspect its kind.
func targetUnitID(state *simgame.GameState, pos simgame.Point) int {
	for _, u := range state.Units {
		if u.Pos == pos {
			return u.ID
		}
	}
	return -1
}
