package evaluation

import "github.com/llmrts/arena/simgame"

// resourceControlRange is the Manhattan distance within which a neutral
// resource deposit counts toward control-resources' unique-resources term.
const resourceControlRange = 4

// maxAttackWorkersTarget is the "3" in "max(0, 3 − enemy_workers)", i.e. the
// attack-workers bonus saturates once the enemy is reduced to zero
// harvesters.
const maxAttackWorkersTarget = 3

// goalBonus computes one goal's contribution to owner's score, scaled by
// scale (1.0 for primary, 0.5 for secondary ).
func goalBonus(state *simgame.GameState, owner, opponent simgame.Owner, goal StrategicGoal, scale float64, weights Weights) float64 {
	switch goal {
	case GoalExpandEconomy:
		workers := float64(workerCount(state, owner))
		resources := float64(state.Resources[owner])
		return scale * (workers*weights.W1 + resources*weights.W2)

	case GoalBuildArmy:
		military := float64(militaryStrength(state, owner))
		barracks := float64(barracksCount(state, owner))
		return scale * (military*weights.W3 + barracks*weights.W4)

	case GoalAttackBase:
		ratio, destroyed := enemyBaseDamageRatio(state, opponent)
		bonus := ratio * weights.W5
		if destroyed {
			bonus += weights.BaseDestroyedBonus
		}
		return scale * bonus

	case GoalAttackWorkers:
		enemyWorkers := workerCount(state, opponent)
		missing := maxAttackWorkersTarget - enemyWorkers
		if missing < 0 {
			missing = 0
		}
		return scale * float64(missing) * weights.W6

	case GoalDefend:
		ratio := ownBaseHPRatio(state, owner)
		military := float64(militaryStrength(state, owner))
		return scale * (ratio*weights.W7 + military*weights.W8)

	case GoalControlResources:
		unique := float64(uniqueResourcesNearWorkers(state, owner))
		return scale * unique * weights.W9

	default:
		return 0
	}
}

// targetBonus computes the target-priority refinement, orthogonal to goals
// : bonus proportional to progress toward whichever of
// base/workers/army the controller currently names as its focus.
func targetBonus(state *simgame.GameState, owner, opponent simgame.Owner, target Target, weights Weights) float64 {
	switch target {
	case TargetBase:
		ratio, _ := enemyBaseDamageRatio(state, opponent)
		return ratio * weights.TargetBaseWeight

	case TargetWorkers:
		enemyWorkers := workerCount(state, opponent)
		missing := maxAttackWorkersTarget - enemyWorkers
		if missing < 0 {
			missing = 0
		}
		return float64(missing) * weights.TargetWorkersWeight

	case TargetArmy:
		advantage := militaryStrength(state, owner) - militaryStrength(state, opponent)
		return float64(advantage) * weights.TargetArmyWeight

	default:
		return 0
	}
}

// enemyBaseDamageRatio returns how damaged opponent's base is (0 = full
// health, 1 = destroyed) and whether it has actually been destroyed.
func enemyBaseDamageRatio(state *simgame.GameState, opponent simgame.Owner) (ratio float64, destroyed bool) {
	base, ok := baseOf(state, opponent)
	if !ok {
		return 1.0, true
	}
	if base.MaxHP <= 0 {
		return 0, false
	}
	return 1.0 - float64(base.HP)/float64(base.MaxHP), false
}

// ownBaseHPRatio returns owner's base health fraction, or 0 if its base is
// already destroyed.
func ownBaseHPRatio(state *simgame.GameState, owner simgame.Owner) float64 {
	base, ok := baseOf(state, owner)
	if !ok || base.MaxHP <= 0 {
		return 0
	}
	return float64(base.HP) / float64(base.MaxHP)
}

// uniqueResourcesNearWorkers counts distinct neutral resource deposits
// within resourceControlRange of any of owner's harvesters.
func uniqueResourcesNearWorkers(state *simgame.GameState, owner simgame.Owner) int {
	seen := make(map[int]struct{})
	for _, worker := range state.Units {
		if worker.Owner != owner || worker.Kind != simgame.UnitHarvester {
			continue
		}
		for _, deposit := range state.Units {
			if deposit.Kind != simgame.UnitStockpile || deposit.Owner != simgame.OwnerNeutral {
				continue
			}
			if simgame.ManhattanDistance(worker.Pos, deposit.Pos) <= resourceControlRange {
				seen[deposit.ID] = struct{}{}
			}
		}
	}
	return len(seen)
}
