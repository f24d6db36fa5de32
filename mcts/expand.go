package mcts

import (
	"math/rand"

	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
)

// unitChoice is one unit's legal actions alongside the prior distribution
// over them, used while sampling joint-action candidates.
type unitChoice struct {
	unitID int
	legal []simgame.Action
	dist priors.Distribution
}

// candidateActions builds up to cfg.CandidateActions distinct joint actions
// for owner's units in sim's current state, sampling each unit's action
// independently from its policy-prior distribution (an independent-per-unit
// assumption) and taking the product of the chosen per-unit probabilities as
// the joint action's weight. Weights are then normalized to sum to 1 across
// the returned candidates.
func candidateActions(table priors.Table, sim simgame.Simulator, owner simgame.Owner, count int, rng *rand.Rand) []pendingAction {
	state := sim.State()
	units := state.UnitsOf(owner)

	choices := make([]unitChoice, 0, len(units))
	for _, unit := range units {
		legal := sim.LegalActions(unit.ID)
		if len(legal) == 0 {
			continue
		}
		dist := priors.Evaluate(table, state, unit, legal)
		choices = append(choices, unitChoice{unitID: unit.ID, legal: legal, dist: dist})
	}
	if len(choices) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, count)
	candidates := make([]pendingAction, 0, count)
	totalWeight := 0.0

	for attempt := 0; attempt < count*3 && len(candidates) < count; attempt++ {
		actions := make([]simgame.Action, 0, len(choices))
		weight := 1.0
		for _, choice := range choices {
			idx := sampleIndex(choice.dist, rng)
			actions = append(actions, choice.legal[idx])
			weight *= choice.dist[idx]
		}
		key := actionSetKey(actions)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, pendingAction{
			Action: simgame.PlayerAction{Actions: actions},
			Weight: weight,
		})
		totalWeight += weight
	}

	if totalWeight <= 0 {
		uniform := 1.0 / float64(len(candidates))
		for i := range candidates {
			candidates[i].Weight = uniform
		}
		return candidates
	}
	for i := range candidates {
		candidates[i].Weight /= totalWeight
	}
	return candidates
}

// sampleIndex draws an index from dist, weighted by its probabilities.
// Returns 0 for an empty dist, and falls back to a uniform random choice if
// dist sums to zero.
func sampleIndex(dist priors.Distribution, rng *rand.Rand) int {
	if len(dist) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range dist {
		total += p
	}
	if total <= 0 {
		return rng.Intn(len(dist))
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, p := range dist {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	return len(dist) - 1
}

// actionSetKey builds a stable dedup key for a candidate joint action.
func actionSetKey(actions []simgame.Action) string {
	key := make([]byte, 0, len(actions)*16)
	for _, a := range actions {
		key = append(key, byte(a.UnitID), byte(a.UnitID>>8), byte(a.Kind), byte(a.Target.X), byte(a.Target.X>>8), byte(a.Target.Y), byte(a.Target.Y>>8))
		key = append(key, a.Param...)
		key = append(key, 0)
	}
	return string(key)
}
