package mcts

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/llm"
	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
	"github.com/llmrts/arena/telemetry"
)

// Agent wires together the prior cache, goal cache, and search loop behind
// the single per-turn entry point a game runner calls. It owns no
// concurrency beyond the background refresh goroutines it launches: the
// search itself is single-threaded cooperative
type Agent struct {
	Owner simgame.Owner
	Config Config
	Weights evaluation.Weights
	Target evaluation.Target

	Priors *priors.Cache
	Goals *GoalCache
	Metrics telemetry.Metrics

	rng *rand.Rand

	lastPriorRefreshTick int
	lastGoalRefreshTick int
}

// NewAgent builds an Agent for owner. generator drives both the prior and
// goal LLM refreshes; it may be nil to run entirely on built-in defaults.
// shared may be nil to keep the prior cache entirely in-process; when set,
// sibling matchups publish and pick up refreshed priors through it. metrics
// may be nil, in which case per-turn search counters are discarded.
func NewAgent(owner simgame.Owner, generator llm.Generator, cfg Config, weights evaluation.Weights, logger telemetry.Logger, shared *priors.SharedStore, metrics telemetry.Metrics, seed int64) *Agent {
	if metrics == nil {
		metrics = telemetry.NoopMetrics{}
	}
	return &Agent{
		Owner: owner,
		Config: cfg,
		Weights: weights,
		Priors: priors.NewCache(generator, shared, logger),
		Goals: NewGoalCache(generator, cfg.RefreshFailureThreshold, logger),
		Metrics: metrics,
		rng: rand.New(rand.NewSource(seed)),
		lastPriorRefreshTick: -1 << 30,
		lastGoalRefreshTick: -1 << 30,
	}
}

// GetAction returns the joint action for this turn. It lazily triggers at
// most one background prior refresh and one background goal refresh per
// their respective cache-tick intervals, then runs Search against whatever
// table/goals are currently cached — never blocking on a refresh beyond the
// very first call each cache ever makes.
func (a *Agent) GetAction(ctx context.Context, sim simgame.Simulator) simgame.PlayerAction {
	tick := sim.State().Tick

	if tick-a.lastPriorRefreshTick >= a.Config.PriorCacheTicks {
		a.lastPriorRefreshTick = tick
		go a.Priors.Refresh(ctx, priorRefreshPrompt(sim, a.Owner), llm.DefaultOptions())
	}
	if tick-a.lastGoalRefreshTick >= a.Config.GoalCacheTicks {
		a.lastGoalRefreshTick = tick
		go a.Goals.Refresh(ctx, goalRefreshPrompt(sim, a.Owner), llm.DefaultOptions())
	}

	table := a.Priors.Snapshot()
	goals, _ := a.Goals.Snapshot()

	action, iterations := Search(sim, a.Owner, a.Config, table, goals, a.Target, a.Weights, a.rng)
	a.Metrics.RecordGauge("mcts_iterations_per_turn", float64(iterations), "owner", fmt.Sprintf("%d", a.Owner))
	return action
}

func priorRefreshPrompt(sim simgame.Simulator, owner simgame.Owner) string {
	state := sim.State()
	return fmt.Sprintf(
		"Respond with JSON mapping each situation to an action-kind weight object. "+
			"Tick %d, owner %d resources %d, opponent resources %d.",
		state.Tick, owner, state.Resources[owner], state.Resources[owner.Opponent()],
	)
}

func goalRefreshPrompt(sim simgame.Simulator, owner simgame.Owner) string {
	state := sim.State()
	return fmt.Sprintf(
		`Respond with JSON {"primary": "<goal>", "secondary": "<goal>"} choosing from `+
			"expand-economy, build-army, attack-base, attack-workers, defend, control-resources. "+
			"Tick %d, owner %d units %d, opponent units %d.",
		state.Tick, owner, len(state.UnitsOf(owner)), len(state.UnitsOf(owner.Opponent())),
	)
}
