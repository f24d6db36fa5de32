// Package mcts implements the epsilon-greedy, LLM-guided Monte Carlo tree
// search that chooses a joint unit action for one side each turn, biased by
// priors.Cache and scored by evaluation.Evaluate.
package mcts

import "time"

// Config bundles every tunable parameter of one search, including the
// cache-refresh intervals the owning agent consults before each call.
type Config struct {
	// EpsilonZero is the probability of expanding an unvisited action at an
	// internal node instead of descending into an already-expanded child.
	EpsilonZero float64
	// EpsilonLocal is, conditional on not expanding, the probability of
	// picking the child with the highest mean evaluation (exploitation)
	// rather than the UCB-style "global" score.
	EpsilonLocal float64

	// Budget bounds wall-clock time spent searching.
	Budget time.Duration
	// IterationCap optionally bounds the iteration count regardless of time
	// remaining. Zero means uncapped.
	IterationCap int

	// RolloutTicks bounds how many ticks a simulation plays out past the
	// expanded leaf before falling back to the evaluation function.
	RolloutTicks int

	// CandidateActions bounds how many joint-action candidates are sampled
	// at each expansion, per the independent-per-unit product distribution.
	CandidateActions int

	// ExplorationConstant scales the UCB1 exploration term in the "global
	// value" selection branch.
	ExplorationConstant float64

	// PriorCacheTicks and GoalCacheTicks are the game-tick intervals between
	// lazy cache refreshes
	PriorCacheTicks int
	GoalCacheTicks int

	// RefreshFailureThreshold is how many consecutive refresh failures move
	// the goal controller from ready to degraded.
	RefreshFailureThreshold int
}

// DefaultConfig returns the parameter set names as defaults.
func DefaultConfig() Config {
	return Config{
		EpsilonZero: 0.15,
		EpsilonLocal: 0.5,
		Budget: 200 * time.Millisecond,
		RolloutTicks: 100,
		CandidateActions: 8,
		ExplorationConstant: 1.4,
		PriorCacheTicks: 300,
		GoalCacheTicks: 500,
		RefreshFailureThreshold: 3,
	}
}
