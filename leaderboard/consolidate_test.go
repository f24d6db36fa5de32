package leaderboard

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunFile(t *testing.T, dir, name string, doc runFile) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestConsolidateDedupesByDisplayNameAndArchitectureKeepingMaxScore(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "run-1.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-01T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "Agent-X", AgentArchitecture: "Search+LLM", Score: 30, EliminatedAt: "Med"}},
	})
	writeRunFile(t, dir, "run-2.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-02T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "Agent-X", AgentArchitecture: "Search+LLM", Score: 69, EliminatedAt: "cleared all"}},
	})

	board, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, 69.0, board.Leaderboard[0].Score)
	assert.Len(t, board.History, 2)
}

func TestConsolidateMarksIncompatibleVersionInHistory(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "run-1-v1.json", runFile{
		ArenaVersion: "v1", Generated: "2026-01-01T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "Agent-X", AgentArchitecture: "Search+LLM", Score: 30}},
	})
	writeRunFile(t, dir, "run-2-v2.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-02T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "Agent-X", AgentArchitecture: "Search+LLM", Score: 69}},
	})

	board, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, "v2", board.Leaderboard[0].ArenaVersion)

	var v1Entry, v2Entry HistoryEntry
	for _, h := range board.History {
		if h.ArenaVersion == "v1" {
			v1Entry = h
		} else {
			v2Entry = h
		}
	}
	assert.False(t, v1Entry.Comparable, "v1 entry should be marked not comparable against the v2 winner")
	assert.True(t, v2Entry.Comparable)
}

func TestConsolidateOrdersByScoreDescendingThenNameAscending(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "run-1.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-01T00:00:00Z",
		Entries: []RunEntry{
			{DisplayName: "Zeta", AgentArchitecture: "Hybrid", Score: 50},
			{DisplayName: "Alpha", AgentArchitecture: "Hybrid", Score: 50},
			{DisplayName: "Beta", AgentArchitecture: "Hybrid", Score: 90},
		},
	})

	board, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 3)
	assert.Equal(t, "Beta", board.Leaderboard[0].DisplayName)
	assert.Equal(t, "Alpha", board.Leaderboard[1].DisplayName)
	assert.Equal(t, "Zeta", board.Leaderboard[2].DisplayName)
}

func TestConsolidateAssignsGradeFromBands(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "run-1.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-01T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "A", AgentArchitecture: "Hybrid", Score: 95, Grade: "bogus"}},
	})

	board, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, "A+", board.Leaderboard[0].Grade)
}

func TestConsolidateTolerantOfMissingHeaderFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run-bad.json"), []byte(`{"entries":[]}`), 0o644))
	writeRunFile(t, dir, "run-good.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-01T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "A", AgentArchitecture: "Hybrid", Score: 10}},
	})

	board, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 1)
}

func TestConsolidateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeRunFile(t, dir, "run-1.json", runFile{
		ArenaVersion: "v2", Generated: "2026-01-01T00:00:00Z",
		Entries: []RunEntry{{DisplayName: "A", AgentArchitecture: "Hybrid", Score: 42}},
	})

	first, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)

	// leaderboard.json/.md now sit in dir too, but they don't match
	// runFilePattern ("run-*.json"), so re-consolidating sees the same
	// input set and must reproduce the same ranking.
	second, err := Consolidate(context.Background(), dir, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Leaderboard, second.Leaderboard)
	assert.Equal(t, first.History, second.History)
}
