package evaluation

import "github.com/llmrts/arena/simgame"

// Evaluate maps (owner, opponent, state) to a scalar in [-1, 1] reflecting
// both raw material value and alignment with owner's active goals and
// tactical target
//
// The returned value is computed from each side's raw score
// (s_owner, s_opponent) as (2·s_owner/(s_owner+s_opponent)) − 1, clamped to
// [−1, 1]; if both raw scores are zero the result is 0. Goal and
// target-priority bonuses are added to owner's raw score only, so the
// function is symmetric under swapping owner/opponent only up to that
// asymmetry — two callers scoring the same state from each side's
// perspective will each see their own goals rewarded, by design.
func Evaluate(state *simgame.GameState, owner, opponent simgame.Owner, goals Goals, target Target, weights Weights) float64 {
	sOwner := materialScore(state, owner, weights)
	sOwner += goalBonus(state, owner, opponent, goals.Primary, primaryWeight, weights)
	sOwner += goalBonus(state, owner, opponent, goals.Secondary, secondaryWeight, weights)
	sOwner += targetBonus(state, owner, opponent, target, weights)

	sOpponent := materialScore(state, opponent, weights)

	denom := sOwner + sOpponent
	if denom == 0 {
		return 0
	}

	normalized := 2*sOwner/denom - 1
	return clamp(normalized, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
