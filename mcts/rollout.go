package mcts

import (
	"math"
	"math/rand"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
)

// decayPerTenTicks is the 0.99 constant used to prefer wins that occur
// earlier: value *= 0.99^(elapsed_ticks/10).
const decayPerTenTicks = 0.99

// stochasticAction is the "fast stochastic playout policy" used for every
// side during rollout, and for the side NOT under search at every tree
// level: each unit independently samples one legal action from its
// policy-prior distribution. It never calls the LLM and never queries the
// evaluation function, keeping it cheap enough to run thousands of times
// per search.
func stochasticAction(table priors.Table, sim simgame.Simulator, owner simgame.Owner, rng *rand.Rand) simgame.PlayerAction {
	state := sim.State()
	var actions []simgame.Action
	for _, unit := range state.UnitsOf(owner) {
		legal := sim.LegalActions(unit.ID)
		if len(legal) == 0 {
			continue
		}
		dist := priors.Evaluate(table, state, unit, legal)
		actions = append(actions, legal[sampleIndex(dist, rng)])
	}
	return simgame.PlayerAction{Actions: actions}
}

// rollout plays sim forward with the stochastic policy for both sides, up
// to maxTicks ticks or until the game ends, then scores the resulting state
// from owner's perspective and applies the early-win time decay. baseTicks
// is how many ticks the tree descent already consumed before reaching this
// leaf, so the decay reflects total elapsed ticks from the search root.
func rollout(table priors.Table, sim simgame.Simulator, owner simgame.Owner, maxTicks int, baseTicks int, goals evaluation.Goals, target evaluation.Target, weights evaluation.Weights, rng *rand.Rand) float64 {
	played := 0
	for played < maxTicks {
		if sim.Outcome().Result != simgame.ResultOngoing {
			break
		}
		p0 := stochasticAction(table, sim, simgame.Owner0, rng)
		p1 := stochasticAction(table, sim, simgame.Owner1, rng)
		sim.AdvanceTick(p0, p1)
		played++
	}

	value := evaluation.Evaluate(sim.State(), owner, owner.Opponent(), goals, target, weights)
	elapsed := baseTicks + played
	decay := math.Pow(decayPerTenTicks, float64(elapsed)/10.0)
	return value * decay
}
