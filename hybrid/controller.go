package hybrid

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/llm"
	"github.com/llmrts/arena/simgame"
	"github.com/llmrts/arena/telemetry"
)

// baseIntervalTicks and combatIntervalTicks are the default LLM-consultation
// cadences: slower out of combat, faster once an attacker is engaged.
const (
	baseIntervalTicks = 200
	combatIntervalTicks = 100
)

// combatRange is the Manhattan distance defining the in-combat predicate.
const combatRange = 5

// transitionSchema shape-checks a decoded transition payload; failures are
// logged only, since an unrecognized strategy name or out-of-range scalar
// is handled downstream by the fallback scan and clamp, not by rejecting
// the whole response.
var transitionSchema = mustCompileTransitionSchema()

func mustCompileTransitionSchema() *llm.SchemaValidator {
	v, err := llm.CompileSchema("hybrid-transition", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strategy": map[string]any{"type": "string"},
			"aggression": map[string]any{"type": "number"},
			"economy_priority": map[string]any{"type": "number"},
			"retreat_threshold": map[string]any{"type": "number"},
			"primary_target": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		panic("hybrid: invalid built-in transition schema: " + err.Error())
	}
	return v
}

// strength weights used by the retreat override. The reference simulator
// has no light/heavy/ranged distinction; every attacker uses the "light"
// weight and every harvester uses the worker weight.
const (
	workerStrengthWeight = 1.0
	lightStrengthWeight = 2.0
)

// Controller is a finite state machine: one active named strategy plus the
// tactical parameters its last accepted LLM transition set, failing over to
// the previously accepted values on any LLM error.
type Controller struct {
	strategies map[StrategyName]GameStrategy
	current StrategyName
	params Params

	generator llm.Generator
	channel *llm.Channel
	lastTransitionTick int
	logger telemetry.Logger
	baseInterval int
	combatInterval int
}

// NewController builds a Controller starting in worker-rush with default
// parameters. generator may be nil, in which case the controller never
// transitions away from its initial strategy.
func NewController(generator llm.Generator, logger telemetry.Logger) *Controller {
	if logger == nil {
		logger = telemetry.NoopLogger{}
	}
	strategies := make(map[StrategyName]GameStrategy, len(allStrategyNames))
	for _, name := range allStrategyNames {
		strategies[name] = newRuleStrategy(name)
	}
	return &Controller{
		strategies: strategies,
		current: StrategyWorkerRush,
		params: DefaultParams(),
		generator: generator,
		channel: llm.NewChannel(3),
		lastTransitionTick: -1 << 30,
		logger: logger,
		baseInterval: baseIntervalTicks,
		combatInterval: combatIntervalTicks,
	}
}

// SetIntervals overrides the base and in-combat LLM-consultation cadences,
// letting a caller honor HYBRID_INTERVAL_TICKS/HYBRID_COMBAT_INTERVAL_TICKS
// instead of the built-in defaults. A non-positive value leaves
// the corresponding interval unchanged.
func (c *Controller) SetIntervals(base, combat int) {
	if base > 0 {
		c.baseInterval = base
	}
	if combat > 0 {
		c.combatInterval = combat
	}
}

// GetAction returns owner's joint action for the current tick, consulting
// the LLM for a state transition on the appropriate interval and applying
// the retreat override before delegating to the active strategy.
func (c *Controller) GetAction(ctx context.Context, sim simgame.Simulator, owner simgame.Owner) simgame.PlayerAction {
	state := sim.State()
	inCombat := isInCombat(state, owner)

	interval := c.baseInterval
	if inCombat {
		interval = c.combatInterval
	}
	if state.Tick-c.lastTransitionTick >= interval {
		c.lastTransitionTick = state.Tick
		c.attemptTransition(ctx, sim, owner)
	}

	active := c.current
	if inCombat && ownStrength(state, owner) < c.params.RetreatThreshold*ownStrength(state, owner.Opponent()) {
		active = StrategyCounterAttack
	}
	return c.strategies[active].Act(sim, owner, c.params)
}

// isInCombat implements the predicate: any attacker-capable unit of
// owner's within Manhattan-5 of an enemy unit.
func isInCombat(state *simgame.GameState, owner simgame.Owner) bool {
	for _, unit := range state.UnitsOf(owner) {
		if unit.Kind != simgame.UnitAttacker {
			continue
		}
		if _, dist, ok := state.NearestEnemy(owner, unit.Pos); ok && dist <= combatRange {
			return true
		}
	}
	return false
}

// ownStrength sums owner's unit-kind strength weights.
func ownStrength(state *simgame.GameState, owner simgame.Owner) float64 {
	total := 0.0
	for _, unit := range state.UnitsOf(owner) {
		switch unit.Kind {
		case simgame.UnitHarvester:
			total += workerStrengthWeight
		case simgame.UnitAttacker:
			total += lightStrengthWeight
		}
	}
	return total
}

type transitionResponse struct {
	Strategy string `json:"strategy"`
	Aggression float64 `json:"aggression"`
	EconomyPriority float64 `json:"economy_priority"`
	RetreatThreshold float64 `json:"retreat_threshold"`
	PrimaryTarget string `json:"primary_target"`
}

// attemptTransition issues one LLM call naming the next strategy and its
// tactical scalars. A transport failure leaves c.current and c.params
// untouched. A parse failure or an unrecognized strategy name falls back to
// a plain-text scan of the raw response, which switches c.current (but not
// c.params) when it finds a strategy name and otherwise leaves both as they
// were.
func (c *Controller) attemptTransition(ctx context.Context, sim simgame.Simulator, owner simgame.Owner) {
	if c.generator == nil || c.channel.State() == llm.ChannelDegraded {
		return
	}

	text, err := c.generator.Generate(ctx, transitionPrompt(sim, owner), llm.DefaultOptions())
	if err != nil {
		c.channel.RecordFailure()
		c.logger.Warn(ctx, "hybrid: transition call failed", "error", err)
		return
	}

	raw, err := llm.ExtractJSON(text)
	if err != nil {
		c.applyFallback(ctx, text)
		return
	}

	var shapeCheck any
	if err := json.Unmarshal(raw, &shapeCheck); err == nil {
		if err := transitionSchema.Validate(shapeCheck); err != nil {
			c.logger.Warn(ctx, "hybrid: transition response failed shape validation", "error", err)
		}
	}

	var decoded transitionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.applyFallback(ctx, text)
		return
	}

	name := StrategyName(decoded.Strategy)
	if !isKnownStrategy(name) {
		c.applyFallback(ctx, text)
		return
	}

	c.channel.RecordSuccess()
	c.current = name
	c.params = Params{
		Aggression: decoded.Aggression,
		EconomyPriority: decoded.EconomyPriority,
		RetreatThreshold: decoded.RetreatThreshold,
		PrimaryTarget: knownOrPrevious(decoded.PrimaryTarget, c.params.PrimaryTarget),
	}.clamp()
}

// applyFallback scans raw text for any recognized strategy name before
// giving up and leaving the current state untouched
func (c *Controller) applyFallback(ctx context.Context, raw string) {
	lower := strings.ToLower(raw)
	for _, name := range allStrategyNames {
		if strings.Contains(lower, string(name)) {
			c.channel.RecordSuccess()
			c.current = name
			return
		}
	}
	c.channel.RecordFailure()
	c.logger.Warn(ctx, "hybrid: transition response unparseable, keeping prior state", "state", c.channel.State())
}

func isKnownStrategy(name StrategyName) bool {
	for _, n := range allStrategyNames {
		if n == name {
			return true
		}
	}
	return false
}

func knownOrPrevious(raw string, previous evaluation.Target) evaluation.Target {
	switch evaluation.Target(raw) {
	case evaluation.TargetBase, evaluation.TargetWorkers, evaluation.TargetArmy:
		return evaluation.Target(raw)
	default:
		return previous
	}
}

func transitionPrompt(sim simgame.Simulator, owner simgame.Owner) string {
	state := sim.State()
	return fmt.Sprintf(
		`Respond with JSON {"strategy": "<name>", "aggression": 0..1, "economy_priority": 0..1, `+
			`"retreat_threshold": 0..1, "primary_target": "base|workers|army"}. `+
			"Tick %d, owner %d resources %d units %d, opponent resources %d units %d.",
		state.Tick, owner, state.Resources[owner], len(state.UnitsOf(owner)),
		state.Resources[owner.Opponent()], len(state.UnitsOf(owner.Opponent())),
	)
}
