package leaderboard

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/llmrts/arena/telemetry"
)

// runFilePattern matches the artifact names tournament.RunTournament
// writes, "run-<uuid>.json".
const runFilePattern = "run-*.json"

// Consolidate reduces every BenchmarkRun JSON artifact in dir into a single
// ranked Leaderboard, and persists it as leaderboard.json and
// leaderboard.md in the same directory.
func Consolidate(ctx context.Context, dir string, logger telemetry.Logger) (Leaderboard, error) {
	if logger == nil {
		logger = telemetry.NoopLogger{}
	}

	paths, err := filepath.Glob(filepath.Join(dir, runFilePattern))
	if err != nil {
		return Leaderboard{}, err
	}
	sort.Strings(paths) // deterministic history ordering

	var history []HistoryEntry
	for _, path := range paths {
		entries, arenaVersion, generated, err := readRunFile(path)
		if err != nil {
			logger.Error(ctx, "leaderboard: skipping unreadable run file", "path", path, "error", err)
			continue
		}
		for _, e := range entries {
			history = append(history, HistoryEntry{
				RunEntry: e,
				ArenaVersion: arenaVersion,
				SourceFile: filepath.Base(path),
				Date: generated,
				Comparable: true, // provisionally; recomputed below per dedup bucket
			})
		}
	}

	best := dedupeBest(history)
	markIncompatible(history, best)

	var rows []LeaderboardEntry
	for _, h := range best {
		rows = append(rows, LeaderboardEntry{RunEntry: h.RunEntry, ArenaVersion: h.ArenaVersion, SourceFile: h.SourceFile})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})
	for i := range rows {
		rows[i].Grade = grade(rows[i].Score)
	}

	board := Leaderboard{Generated: time.Now().UTC(), Leaderboard: rows, History: history}

	if err := writeJSONAtomic(filepath.Join(dir, "leaderboard.json"), board); err != nil {
		return board, err
	}
	if err := writeMarkdown(filepath.Join(dir, "leaderboard.md"), board); err != nil {
		return board, err
	}
	return board, nil
}

func readRunFile(path string) (entries []RunEntry, arenaVersion string, generated time.Time, err error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, "", time.Time{}, readErr
	}
	var doc runFile
	if decodeErr := json.Unmarshal(data, &doc); decodeErr != nil {
		return nil, "", time.Time{}, decodeErr
	}
	if doc.ArenaVersion == "" {
		return nil, "", time.Time{}, errMissingHeader{field: "arena_version", path: path}
	}
	ts, _ := time.Parse(time.RFC3339, doc.Generated)
	return doc.Entries, doc.ArenaVersion, ts, nil
}

type errMissingHeader struct {
	field string
	path string
}

func (e errMissingHeader) Error() string {
	return "leaderboard: run file " + e.path + " missing required header " + e.field
}

// dedupeBest keeps, for each (display_name, agent_architecture) key, the
// single highest-scoring history entry, breaking ties by the most recent
// timestamp.
func dedupeBest(history []HistoryEntry) map[key]HistoryEntry {
	best := make(map[key]HistoryEntry)
	for _, h := range history {
		k := key{DisplayName: h.DisplayName, Architecture: h.AgentArchitecture}
		current, ok := best[k]
		if !ok {
			best[k] = h
			continue
		}
		if h.Score > current.Score || (h.Score == current.Score && h.Date.After(current.Date)) {
			best[k] = h
		}
	}
	return best
}

// markIncompatible flips Comparable to false on every history entry that
// shares a dedup key with the kept leaderboard winner but carries a
// different arena-version rule. It mutates history in place.
func markIncompatible(history []HistoryEntry, best map[key]HistoryEntry) {
	for i := range history {
		k := key{DisplayName: history[i].DisplayName, Architecture: history[i].AgentArchitecture}
		winner, ok := best[k]
		if !ok {
			continue
		}
		if history[i].ArenaVersion != winner.ArenaVersion {
			history[i].Comparable = false
		}
	}
}
