// Command gamerunner plays exactly one isolated game between two agent
// classes on the reference simulator and reports its outcome on stdout,
// per the tournament package's child-process contract: a single
// "RESULT winner=<0|1|draw> ticks=<N> agent_side=<0|1>" line followed by
// exit code 0, or a non-zero exit with no RESULT line on crash.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/hybrid"
	"github.com/llmrts/arena/llm"
	"github.com/llmrts/arena/mcts"
	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
	"github.com/llmrts/arena/telemetry"
)

// player is the common per-turn entry point both mcts.Agent and
// hybrid.Controller satisfy once bound to their own Owner.
type player interface {
	GetAction(ctx context.Context, sim simgame.Simulator) simgame.PlayerAction
}

// mctsAdapter and hybridAdapter close over an Owner so both concrete agent
// types present the same player interface to runGame.
type mctsAdapter struct {
	owner simgame.Owner
	agent *mcts.Agent
}

func (a mctsAdapter) GetAction(ctx context.Context, sim simgame.Simulator) simgame.PlayerAction {
	return a.agent.GetAction(ctx, sim)
}

type hybridAdapter struct {
	owner simgame.Owner
	controller *hybrid.Controller
}

func (a hybridAdapter) GetAction(ctx context.Context, sim simgame.Simulator) simgame.PlayerAction {
	return a.controller.GetAction(ctx, sim, a.owner)
}

// randomAdapter is a dependency-free baseline opponent: it takes the first
// legal action for every unit that has one, never calling out to an LLM.
type randomAdapter struct {
	owner simgame.Owner
}

func (a randomAdapter) GetAction(ctx context.Context, sim simgame.Simulator) simgame.PlayerAction {
	state := sim.State()
	var actions []simgame.Action
	for _, unit := range state.UnitsOf(a.owner) {
		legal := sim.LegalActions(unit.ID)
		if len(legal) > 0 {
			actions = append(actions, legal[0])
		}
	}
	return simgame.PlayerAction{Actions: actions}
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := telemetry.NewNoopLogger()

	tickCap, err := strconv.Atoi(envOrDefault("TICK_CAP", "1500"))
	if err != nil || tickCap <= 0 {
		fmt.Fprintf(os.Stderr, "gamerunner: invalid TICK_CAP: %v\n", err)
		return 1
	}

	mapName := os.Getenv("MAP")
	width, height := mapDimensions(mapName)

	sim := simgame.NewReference(simgame.ReferenceConfig{Width: width, Height: height, TickCap: tickCap})

	host := os.Getenv("MODEL_HOST")
	generator0, err := buildGenerator(host, os.Getenv("MODEL_NAME"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamerunner: %v\n", err)
		return 1
	}
	// MODEL_NAME_P2 lets the opponent side run a different model than the
	// agent under test; an empty value falls back to MODEL_NAME.
	modelNameP2 := os.Getenv("MODEL_NAME_P2")
	if modelNameP2 == "" {
		modelNameP2 = os.Getenv("MODEL_NAME")
	}
	generator1, err := buildGenerator(host, modelNameP2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamerunner: %v\n", err)
		return 1
	}

	var shared *priors.SharedStore
	if addr := os.Getenv("ARENA_REDIS_ADDR"); addr != "" {
		shared = priors.NewSharedStore(addr)
		defer shared.Close()
	}

	p0, err := buildPlayer(os.Getenv("AGENT_CLASS"), simgame.Owner0, generator0, logger, shared)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamerunner: agent class: %v\n", err)
		return 2
	}
	p1, err := buildPlayer(os.Getenv("OPPONENT_CLASS"), simgame.Owner1, generator1, logger, shared)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamerunner: opponent class: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	outcome, ticks := playGame(ctx, sim, p0, p1, tickCap)

	// agent_side is always 0: AGENT_CLASS is always assigned to Owner0 by
	// convention, the tournament package never swaps sides mid-matchup.
	switch outcome.Result {
	case simgame.ResultWin:
		fmt.Printf("RESULT winner=%d ticks=%d agent_side=0\n", int(outcome.Winner), ticks)
	case simgame.ResultDraw:
		fmt.Printf("RESULT winner=draw ticks=%d agent_side=0\n", ticks)
	default:
		fmt.Fprintf(os.Stderr, "gamerunner: simulation ended without a terminal result\n")
		return 1
	}
	return 0
}

func playGame(ctx context.Context, sim simgame.Simulator, p0, p1 player, tickCap int) (simgame.Outcome, int) {
	for {
		if ctx.Err() != nil {
			return simgame.Outcome{Result: simgame.ResultDraw}, sim.State().Tick
		}
		if outcome := sim.Outcome(); outcome.Result != simgame.ResultOngoing {
			return outcome, sim.State().Tick
		}
		a0 := p0.GetAction(ctx, sim)
		a1 := p1.GetAction(ctx, sim)
		sim.AdvanceTick(a0, a1)
	}
}

func buildPlayer(class string, owner simgame.Owner, generator llm.Generator, logger telemetry.Logger, shared *priors.SharedStore) (player, error) {
	switch class {
	case "", "reference", "random":
		return randomAdapter{owner: owner}, nil
	case "mcts":
		cfg := mcts.DefaultConfig()
		if v := envInt("MCTS_PRIOR_CACHE_TICKS"); v > 0 {
			cfg.PriorCacheTicks = v
		}
		if v := envInt("MCTS_GOAL_CACHE_TICKS"); v > 0 {
			cfg.GoalCacheTicks = v
		}
		agent := mcts.NewAgent(owner, generator, cfg, evaluation.DefaultWeights(), logger, shared, nil, int64(owner)+1)
		return mctsAdapter{owner: owner, agent: agent}, nil
	case "hybrid":
		controller := hybrid.NewController(generator, logger)
		controller.SetIntervals(envInt("HYBRID_INTERVAL_TICKS"), envInt("HYBRID_COMBAT_INTERVAL_TICKS"))
		return hybridAdapter{owner: owner, controller: controller}, nil
	default:
		return nil, fmt.Errorf("unknown agent class %q", class)
	}
}

// buildGenerator resolves the LLM backend from MODEL_HOST/MODEL_NAME. A
// missing MODEL_HOST degrades to a nil Generator, which both mcts.Agent and
// hybrid.Controller tolerate by running on built-in defaults only (neither
// ever requires an LLM to produce a legal action).
func buildGenerator(host, model string) (llm.Generator, error) {
	if host == "" {
		return nil, nil
	}
	client := llm.NewLocalClient(host)
	limited := llm.NewRateLimited(client, 2, 1)
	return modelDefaultingGenerator{next: limited, model: model}, nil
}

// modelDefaultingGenerator fills in Options.Model from MODEL_NAME when a
// caller leaves it unset, since priors.Cache and hybrid.Controller both
// build their Options from llm.DefaultOptions() without naming a model.
type modelDefaultingGenerator struct {
	next llm.Generator
	model string
}

func (g modelDefaultingGenerator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	if opts.Model == "" {
		opts.Model = g.model
	}
	return g.next.Generate(ctx, prompt, opts)
}

func mapDimensions(name string) (int, int) {
	switch name {
	case "small":
		return 12, 12
	case "large":
		return 24, 24
	default:
		return 16, 16
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an optional positive integer environment variable, returning
// 0 when unset or unparseable so callers can treat 0 as "use the default".
func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
