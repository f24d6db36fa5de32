package hybrid

import "github.com/llmrts/arena/simgame"

// profile captures how one named strategy differs from the others within
// the reference simulator's narrow action vocabulary: the handful of legal
// actions Reference exposes per unit kind is what every strategy has to
// work with. produceAttackerBias prefers training an attacker over a
// harvester when a producer has both options available; engageThreshold is
// the aggression level below which attackers hold position instead of
// advancing/attacking.
type profile struct {
	produceAttackerBias float64
	engageThreshold float64
}

var profiles = map[StrategyName]profile{
	StrategyWorkerRush: {produceAttackerBias: 0.2, engageThreshold: 0.3},
	StrategyLightRush: {produceAttackerBias: 0.6, engageThreshold: 0.2},
	StrategyHeavyRush: {produceAttackerBias: 0.8, engageThreshold: 0.1},
	StrategyRangedRush: {produceAttackerBias: 0.7, engageThreshold: 0.15},
	StrategyTurtleDefense: {produceAttackerBias: 0.5, engageThreshold: 0.8},
	StrategyBoomEconomy: {produceAttackerBias: 0.1, engageThreshold: 0.9},
	StrategyCounterAttack: {produceAttackerBias: 0.6, engageThreshold: 0.5},
	StrategyHarass: {produceAttackerBias: 0.5, engageThreshold: 0.25},
}

// ruleStrategy is the single GameStrategy implementation every named state
// uses, parameterized by its profile; it holds no per-tick mutable state, so
// Reset is a no-op.
type ruleStrategy struct {
	name StrategyName
}

func newRuleStrategy(name StrategyName) *ruleStrategy {
	return &ruleStrategy{name: name}
}

func (s *ruleStrategy) Reset() {}

// Act walks owner's units and, per unit kind, applies the strategy's
// producer-bias and engage-threshold rules on top of whatever Simulator
// reports as legal.
func (s *ruleStrategy) Act(sim simgame.Simulator, owner simgame.Owner, params Params) simgame.PlayerAction {
	profile := profiles[s.name]
	state := sim.State()

	var actions []simgame.Action
	for _, unit := range state.UnitsOf(owner) {
		legal := sim.LegalActions(unit.ID)
		if len(legal) == 0 {
			continue
		}

		switch unit.Kind {
		case simgame.UnitProducer:
			actions = append(actions, chooseProduceAction(legal, profile.produceAttackerBias, params.EconomyPriority))
		case simgame.UnitAttacker:
			if params.Aggression < profile.engageThreshold {
				continue // hold position: the reference engine has no explicit retreat action
			}
			actions = append(actions, legal[0])
		default:
			actions = append(actions, legal[0])
		}
	}
	return simgame.PlayerAction{Actions: actions}
}

// chooseProduceAction picks between a producer's "harvester" and "attacker"
// options (when both are legal) by comparing the strategy's attacker bias,
// softened by the currently accepted economy-priority scalar, against a
// fixed 0.5 threshold.
func chooseProduceAction(legal []simgame.Action, attackerBias, economyPriority float64) simgame.Action {
	var harvesterAction, attackerAction simgame.Action
	haveHarvester, haveAttacker := false, false
	for _, a := range legal {
		switch a.Param {
		case "harvester":
			harvesterAction, haveHarvester = a, true
		case "attacker":
			attackerAction, haveAttacker = a, true
		}
	}
	if haveAttacker && (!haveHarvester || attackerBias*(1-economyPriority) > 0.5) {
		return attackerAction
	}
	if haveHarvester {
		return harvesterAction
	}
	return legal[0]
}
