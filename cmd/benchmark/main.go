// Command benchmark is the operator entry point for the tournament
// orchestrator and leaderboard consolidator: "run" drives a single
// BenchmarkRun against a plan, "consolidate" folds every run under an
// artifact directory into a leaderboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use: "benchmark",
		Short: "Run LLM-guided RTS benchmark tournaments and consolidate their results",
	}
	root.AddCommand(runCmd(), consolidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a command failure to a process exit code: 2 for a
// configuration error, 3 for a missing prerequisite (the gamerunner binary
// not found on PATH, an artifact directory that cannot be created), 1
// otherwise. Model-host reachability is not checked before a run.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case isConfigError(err):
		return 2
	case isPrerequisiteError(err):
		return 3
	default:
		return 1
	}
}
