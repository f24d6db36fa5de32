package hybrid

import "github.com/llmrts/arena/simgame"

// ActForTest exposes the otherwise-unexported rule strategy lookup so
// external tests can exercise a single named strategy's Act in isolation,
// without driving a full Controller transition.
func ActForTest(name StrategyName, sim simgame.Simulator, owner simgame.Owner, params Params) simgame.PlayerAction {
	return newRuleStrategy(name).Act(sim, owner, params.clamp())
}

// IsInCombatForTest exposes the in-combat predicate for direct testing.
func IsInCombatForTest(state *simgame.GameState, owner simgame.Owner) bool {
	return isInCombat(state, owner)
}

// OwnStrengthForTest exposes the strength calculation for direct testing.
func OwnStrengthForTest(state *simgame.GameState, owner simgame.Owner) float64 {
	return ownStrength(state, owner)
}
