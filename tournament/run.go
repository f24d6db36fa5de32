package tournament

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/llmrts/arena/telemetry"
)

// RunTournament turns plan into a persisted BenchmarkRun, spawning one
// isolated child process per matchup and applying single-elimination
// scheduling. metrics may be nil, in which case matchup counters and
// timers are discarded.
func RunTournament(ctx context.Context, plan Plan, logger telemetry.Logger, tracer telemetry.Tracer, metrics telemetry.Metrics) (BenchmarkRun, error) {
	if logger == nil {
		logger = telemetry.NoopLogger{}
	}
	if metrics == nil {
		metrics = telemetry.NoopMetrics{}
	}
	if plan.ArtifactDir == "" {
		return BenchmarkRun{}, fmt.Errorf("tournament: plan.ArtifactDir is required")
	}

	partialPath := filepath.Join(plan.ArtifactDir, "partial.json")
	previous, resumed, err := loadPartialRun(partialPath)
	if err != nil {
		return BenchmarkRun{}, err
	}
	completed := make(map[int]MatchupRecord, len(previous.Records))
	for _, r := range previous.Records {
		completed[r.Matchup.Index] = r
	}
	if resumed {
		logger.Info(ctx, "tournament: resuming from partial run", "completed_matchups", len(completed))
	}

	run := BenchmarkRun{
		ArenaVersion: plan.ArenaVersion,
		Generated: time.Now(),
		Map: plan.Map,
		TickCap: plan.TickCap,
		GamesPerMatchup: plan.GamesPerPair,
	}

	for agentIdx, agent := range plan.Agents {
		entry := AgentEntry{
			DisplayName: agent.DisplayName,
			AgentArchitecture: agent.Architecture,
			Opponents: map[string]OpponentTally{},
			EliminatedAt: "cleared all",
		}

		for opponentIdx, opponent := range plan.OpponentsInLine {
			matchupIndex := agentIdx*len(plan.OpponentsInLine) + opponentIdx

			var record MatchupRecord
			if existing, ok := completed[matchupIndex]; ok {
				record = existing
				run.Records = append(run.Records, record)
				metrics.IncCounter("tournament_matchups_resumed", 1, "opponent", opponent.Name)
			} else {
				matchupCtx, span := startSpan(ctx, tracer, "tournament.matchup")
				metrics.IncCounter("tournament_matchups_scheduled", 1, "opponent", opponent.Name)
				start := time.Now()
				record = playPair(plan, agentIdx, opponentIdx, func(m Matchup) GameOutcome {
					return runChild(matchupCtx, m, plan, logger)
				})
				metrics.RecordTimer("tournament_matchup_duration", time.Since(start), "opponent", opponent.Name)
				span.End()

				run.Records = append(run.Records, record)
				completed[matchupIndex] = record
				if err := savePartialRun(partialPath, run); err != nil {
					logger.Warn(ctx, "tournament: failed to persist partial run", "error", err)
				}
			}

			tally := entry.Opponents[opponent.Name]
			switch record.Outcome.Result {
			case ResultWin:
				tally.Wins++
			case ResultDraw:
				tally.Draws++
			default:
				tally.Losses++
			}
			tally.WeightedPoints += record.Score.Total()
			entry.Opponents[opponent.Name] = tally
			entry.Score += record.Score.Total()
			metrics.IncCounter("tournament_matchups_scored", 1, "result", string(record.Outcome.Result))

			if !record.Advances {
				entry.EliminatedAt = opponent.Name
				break
			}
		}

		entry.Grade = grade(entry.Score)
		run.Entries = append(run.Entries, entry)
	}

	id := uuid.New().String()
	jsonPath := filepath.Join(plan.ArtifactDir, fmt.Sprintf("run-%s.json", id))
	mdPath := filepath.Join(plan.ArtifactDir, fmt.Sprintf("run-%s.md", id))

	if err := writeJSONAtomic(jsonPath, toDocument(run)); err != nil {
		return run, err
	}
	if err := writeMarkdown(mdPath, run); err != nil {
		return run, err
	}

	return run, nil
}

func startSpan(ctx context.Context, tracer telemetry.Tracer, name string) (context.Context, telemetry.Span) {
	if tracer == nil {
		return ctx, noopSpan{}
	}
	return tracer.Start(ctx, name)
}

// noopSpan discards every call; used when RunTournament is invoked without
// a tracer (the common case in tests).
type noopSpan struct{}

func (noopSpan) End(opts ...trace.SpanEndOption) {}
func (noopSpan) AddEvent(name string, attrs ...any) {}
func (noopSpan) SetStatus(code codes.Code, description string) {}
func (noopSpan) RecordError(err error, opts ...trace.EventOption) {}
