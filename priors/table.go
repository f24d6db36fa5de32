package priors

import "github.com/llmrts/arena/simgame"

// ActionWeights maps an action kind to its relative probability mass within
// one situation. Weights need not sum to 1; Distribution normalizes.
type ActionWeights map[simgame.ActionKind]float64

// Table is the full Situation→ActionWeights mapping, seeded with built-in
// defaults and optionally replaced by an LLM refresh. A Table is
// only ever read and swapped wholesale by Cache, never mutated concurrently,
// so it needs no internal locking.
type Table map[Situation]ActionWeights

// unknownActionWeight is assigned to any action kind a situation's table has
// no explicit entry for.
const unknownActionWeight = 0.1

// defaultTable returns the built-in action-kind weights per situation.
func defaultTable() Table {
	return Table{
		SituationWorkerNearResource: {
			simgame.ActionHarvest: 1.0,
			simgame.ActionMove: 0.3,
		},
		SituationWorkerIdle: {
			simgame.ActionMove: 1.0,
		},
		SituationWorkerCarrying: {
			simgame.ActionReturn: 1.0,
			simgame.ActionMove: 0.3,
		},
		SituationMilitaryInCombat: {
			simgame.ActionAttack: 1.0,
			simgame.ActionMove: 0.2,
		},
		SituationMilitaryNotCombat: {
			simgame.ActionMove: 1.0,
		},
		SituationBaseEconomy: {
			simgame.ActionProduce: 1.0,
		},
		SituationBaseLowResources: {
			simgame.ActionProduce: 0.3,
		},
		SituationBarracks: {
			simgame.ActionProduce: 1.0,
		},
	}
}

// weightFor returns the situation's weight for kind, or unknownActionWeight
// when the situation has no table or no entry for kind.
func (t Table) weightFor(situation Situation, kind simgame.ActionKind) float64 {
	weights, ok := t[situation]
	if !ok {
		return unknownActionWeight
	}
	w, ok := weights[kind]
	if !ok {
		return unknownActionWeight
	}
	return w
}

// actionKindByName resolves the wire name an LLM refresh response uses for
// an action kind (the {none, move, harvest, return, produce, attack})
// back to its simgame.ActionKind.
func actionKindByName(name string) (simgame.ActionKind, bool) {
	switch name {
	case "move":
		return simgame.ActionMove, true
	case "harvest":
		return simgame.ActionHarvest, true
	case "return":
		return simgame.ActionReturn, true
	case "produce":
		return simgame.ActionProduce, true
	case "attack":
		return simgame.ActionAttack, true
	case "none":
		return simgame.ActionNone, true
	default:
		return 0, false
	}
}

// Clone returns a deep copy, used so a refresh can build a replacement table
// without racing readers of the table currently in use.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for situation, weights := range t {
		cloned := make(ActionWeights, len(weights))
		for kind, w := range weights {
			cloned[kind] = w
		}
		out[situation] = cloned
	}
	return out
}
