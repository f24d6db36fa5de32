package mcts

import (
	"math/rand"
	"time"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
)

// Search runs one epsilon-greedy informed-MCTS turn for owner against sim's
// current state and returns the chosen joint action plus the number of
// select/expand/simulate/backpropagate iterations it completed within
// cfg.Budget, for callers that want to report it as a metric. sim is never
// mutated: the root wraps a fresh clone, and every descent/rollout step
// operates on further clones.
func Search(sim simgame.Simulator, owner simgame.Owner, cfg Config, table priors.Table, goals evaluation.Goals, target evaluation.Target, weights evaluation.Weights, rng *rand.Rand) (simgame.PlayerAction, int) {
	arena := NewArena(sim.Clone(), owner)
	seedUnexplored(arena, arena.Root(), table, rng, cfg)

	deadline := time.Now().Add(cfg.Budget)
	iterations := 0
	for time.Now().Before(deadline) {
		if cfg.IterationCap > 0 && iterations >= cfg.IterationCap {
			break
		}
		runIteration(arena, cfg, table, goals, target, weights, rng)
		iterations++
	}

	edge, ok := selectFinalAction(arena)
	if !ok {
		return simgame.PlayerAction{}, iterations
	}
	return edge.Action, iterations
}

// runIteration performs one select/expand/simulate/backpropagate pass.
func runIteration(arena *Arena, cfg Config, table priors.Table, goals evaluation.Goals, target evaluation.Target, weights evaluation.Weights, rng *rand.Rand) {
	path := []int{arena.Root()}
	nodeIdx := arena.Root()
	depth := 0

	for {
		node := arena.Node(nodeIdx)
		if node.Sim.Outcome().Result != simgame.ResultOngoing {
			break
		}
		if len(node.Unexplored) > 0 && (len(node.Children) == 0 || rng.Float64() < cfg.EpsilonZero) {
			childIdx := expand(arena, nodeIdx, table, rng)
			path = append(path, childIdx)
			depth++
			nodeIdx = childIdx
			seedUnexplored(arena, nodeIdx, table, rng, cfg)
			break
		}
		if len(node.Children) == 0 {
			break
		}
		nodeIdx = selectChild(arena, nodeIdx, cfg, rng.Float64())
		path = append(path, nodeIdx)
		depth++
	}

	leaf := arena.Node(nodeIdx)
	value := rollout(table, leaf.Sim.Clone(), leaf.Owner, cfg.RolloutTicks, depth, goals, target, weights, rng)

	for _, idx := range path {
		n := arena.Node(idx)
		n.VisitCount++
		n.AccumulatedEvaluation += value
	}
}

// expand pops one pending candidate action from nodeIdx, applies it (plus a
// stochastic opponent response) to a clone of the node's simulator, and adds
// the resulting state as a new child.
func expand(arena *Arena, nodeIdx int, table priors.Table, rng *rand.Rand) int {
	node := arena.Node(nodeIdx)
	choice := node.Unexplored[len(node.Unexplored)-1]
	node.Unexplored = node.Unexplored[:len(node.Unexplored)-1]

	childSim := node.Sim.Clone()
	ownerAction, opponentAction := choice.Action, stochasticAction(table, childSim, node.Owner.Opponent(), rng)
	if node.Owner == simgame.Owner0 {
		childSim.AdvanceTick(ownerAction, opponentAction)
	} else {
		childSim.AdvanceTick(opponentAction, ownerAction)
	}

	return arena.AddChild(nodeIdx, choice.Action, choice.Weight, childSim, node.Owner)
}

// seedUnexplored populates a freshly created node's pending-action list, if
// it has none yet and the game is still ongoing.
func seedUnexplored(arena *Arena, nodeIdx int, table priors.Table, rng *rand.Rand, cfg Config) {
	node := arena.Node(nodeIdx)
	if len(node.Unexplored) > 0 || node.Sim.Outcome().Result != simgame.ResultOngoing {
		return
	}
	node.Unexplored = candidateActions(table, node.Sim, node.Owner, cfg.CandidateActions, rng)
}
