// Package priors turns a (unit, game state) pair into a probability
// distribution over that unit's legal actions, biasing the search tree's
// expansion toward moves the built-in heuristics or a refreshed LLM
// judgment consider promising.
package priors

import "github.com/llmrts/arena/simgame"

// Situation classifies a single unit in a single game state. The classifier
// only looks at the unit itself, its owner's stockpile, and proximity to the
// nearest resource/enemy — never at the opponent's hidden intentions.
type Situation string

const (
	SituationWorkerNearResource Situation = "worker-near-resource"
	SituationWorkerIdle Situation = "worker-idle"
	SituationWorkerCarrying Situation = "worker-carrying"
	SituationMilitaryInCombat Situation = "military-in-combat"
	SituationMilitaryNotCombat Situation = "military-not-in-combat"
	SituationBaseEconomy Situation = "base-economy"
	SituationBaseLowResources Situation = "base-low-resources"
	SituationBarracks Situation = "barracks"
)

// nearResourceRange is the Manhattan-distance threshold at or below which a worker
// is classified as "near" a resource deposit rather than idle.
const nearResourceRange = 3

// combatRange is the Manhattan-distance threshold within which a military
// unit is considered to be engaging an enemy.
const combatRange = 5

// lowResourceThreshold is the stockpiled-resource level below which an
// owner's stockpile is classified base-low-resources instead of base-economy.
const lowResourceThreshold = 50

// Classify assigns a Situation to unit given the game state it exists in.
func Classify(state *simgame.GameState, unit simgame.Unit) Situation {
	switch unit.Kind {
	case simgame.UnitHarvester:
		if unit.Carrying > 0 {
			return SituationWorkerCarrying
		}
		if _, dist, ok := state.NearestResource(unit.Pos); ok && dist <= nearResourceRange {
			return SituationWorkerNearResource
		}
		return SituationWorkerIdle

	case simgame.UnitAttacker:
		if _, dist, ok := state.NearestEnemy(unit.Owner, unit.Pos); ok && dist <= combatRange {
			return SituationMilitaryInCombat
		}
		return SituationMilitaryNotCombat

	case simgame.UnitStockpile:
		if state.Resources[unit.Owner] < lowResourceThreshold {
			return SituationBaseLowResources
		}
		return SituationBaseEconomy

	case simgame.UnitProducer:
		return SituationBarracks

	default:
		return SituationBaseEconomy
	}
}
