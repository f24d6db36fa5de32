package mcts

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/llmrts/arena/evaluation"
	"github.com/llmrts/arena/llm"
	"github.com/llmrts/arena/telemetry"
)

// GoalState is the goal controller's state machine position
type GoalState int

const (
	GoalStateInitial GoalState = iota
	GoalStateReady
	GoalStateDegraded
)

func (s GoalState) String() string {
	switch s {
	case GoalStateReady:
		return "ready"
	case GoalStateDegraded:
		return "degraded"
	default:
		return "initial"
	}
}

// goalRefreshWindow mirrors priors.Cache's call discipline: at most one LLM
// call per window, regardless of how often Refresh is invoked.
const goalRefreshWindow = 30 * time.Second

// GoalCache owns the live primary/secondary goal pair and the state machine
// tracking refresh health: initial → ready on first success, ready →
// degraded after RefreshFailureThreshold consecutive failures, degraded →
// ready on the next success.
type GoalCache struct {
	mu sync.Mutex
	goals evaluation.Goals
	state GoalState
	consecutiveFailures int
	failureThreshold int
	lastRefresh time.Time
	refreshing bool

	generator llm.Generator
	logger telemetry.Logger
}

// NewGoalCache builds a GoalCache seeded with a neutral default goal pair.
// generator may be nil, in which case Refresh is always a no-op and the
// controller never leaves GoalStateInitial.
func NewGoalCache(generator llm.Generator, failureThreshold int, logger telemetry.Logger) *GoalCache {
	if failureThreshold <= 0 {
		failureThreshold = 3
	}
	if logger == nil {
		logger = telemetry.NoopLogger{}
	}
	return &GoalCache{
		goals: evaluation.Goals{Primary: evaluation.GoalExpandEconomy, Secondary: evaluation.GoalDefend},
		failureThreshold: failureThreshold,
		generator: generator,
		logger: logger,
	}
}

// Snapshot returns the currently active goals and controller state.
func (c *GoalCache) Snapshot() (evaluation.Goals, GoalState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goals, c.state
}

type goalResponse struct {
	Primary string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Refresh issues at most one LLM call per goalRefreshWindow and is
// single-flight: a call that arrives while a previous one is still in
// flight (e.g., launched from a background goroutine by the caller) returns
// immediately without starting a second request.
func (c *GoalCache) Refresh(ctx context.Context, prompt string, opts llm.Options) {
	if c.generator == nil {
		return
	}

	c.mu.Lock()
	if c.refreshing || time.Since(c.lastRefresh) < goalRefreshWindow {
		c.mu.Unlock()
		return
	}
	c.refreshing = true
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	text, err := c.generator.Generate(ctx, prompt, opts)
	if err != nil {
		c.recordFailure(ctx, "transport error", err)
		return
	}

	raw, err := llm.ExtractJSON(text)
	if err != nil {
		c.recordFailure(ctx, "no JSON object in response", err)
		return
	}

	var decoded goalResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.recordFailure(ctx, "malformed goal response", err)
		return
	}

	next := c.applyKnownGoals(decoded)
	c.mu.Lock()
	c.goals = next
	c.consecutiveFailures = 0
	if c.state != GoalStateReady {
		c.logger.Info(ctx, "mcts: goal controller transitioned", "state", GoalStateReady.String())
	}
	c.state = GoalStateReady
	c.mu.Unlock()
}

// applyKnownGoals keeps the previous value for any field naming an unknown
// StrategicGoal, per the schema-error "skip the offending field" policy.
func (c *GoalCache) applyKnownGoals(decoded goalResponse) evaluation.Goals {
	c.mu.Lock()
	next := c.goals
	c.mu.Unlock()

	if isKnownGoal(decoded.Primary) {
		next.Primary = evaluation.StrategicGoal(decoded.Primary)
	}
	if isKnownGoal(decoded.Secondary) {
		next.Secondary = evaluation.StrategicGoal(decoded.Secondary)
	}
	return next
}

func isKnownGoal(name string) bool {
	switch evaluation.StrategicGoal(name) {
	case evaluation.GoalExpandEconomy, evaluation.GoalBuildArmy, evaluation.GoalAttackBase,
		evaluation.GoalAttackWorkers, evaluation.GoalDefend, evaluation.GoalControlResources:
		return true
	default:
		return false
	}
}

func (c *GoalCache) recordFailure(ctx context.Context, reason string, err error) {
	c.mu.Lock()
	c.consecutiveFailures++
	if c.consecutiveFailures >= c.failureThreshold && c.state == GoalStateReady {
		c.state = GoalStateDegraded
	}
	state := c.state
	c.mu.Unlock()
	c.logger.Warn(ctx, "mcts: goal refresh failed", "reason", reason, "error", err, "state", state.String())
}
