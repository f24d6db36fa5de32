// Package hybrid implements a lightweight, LLM-guided finite state machine
// that is competitive without tree lookahead: a deterministic rule strategy
// executes every tick, and an occasional LLM call only ever picks which
// rule strategy is active and tunes four tactical scalars.
package hybrid

import "github.com/llmrts/arena/simgame"

// StrategyName is one of the eight named rule strategies the controller can
// hold active at a time.
type StrategyName string

const (
	StrategyWorkerRush StrategyName = "worker-rush"
	StrategyLightRush StrategyName = "light-rush"
	StrategyHeavyRush StrategyName = "heavy-rush"
	StrategyRangedRush StrategyName = "ranged-rush"
	StrategyTurtleDefense StrategyName = "turtle-defense"
	StrategyBoomEconomy StrategyName = "boom-economy"
	StrategyCounterAttack StrategyName = "counter-attack"
	StrategyHarass StrategyName = "harass"
)

// allStrategyNames lists every recognized strategy, used both to build the
// default registry and to drive the plain-text fallback scan.
var allStrategyNames = []StrategyName{
	StrategyWorkerRush, StrategyLightRush, StrategyHeavyRush, StrategyRangedRush,
	StrategyTurtleDefense, StrategyBoomEconomy, StrategyCounterAttack, StrategyHarass,
}

// GameStrategy is the capability every rule strategy implements: a
// stateless-or-not per-tick action generator plus a reset hook. Composition
// over inheritance — Controller holds these keyed by StrategyName and an
// explicit current-state enum, rather than a subclass hierarchy.
type GameStrategy interface {
	// Act returns owner's joint action for the current tick of sim, given
	// the currently accepted tactical parameters.
	Act(sim simgame.Simulator, owner simgame.Owner, params Params) simgame.PlayerAction
	// Reset clears any strategy-local state (rally points, timers).
	// Controller does not call it when it switches strategies.
	Reset()
}
