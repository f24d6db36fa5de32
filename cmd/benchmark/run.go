package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/llmrts/arena/config"
	"github.com/llmrts/arena/telemetry"
	"github.com/llmrts/arena/tournament"
)

func runCmd() *cobra.Command {
	var (
		planPath string
		games int
		agentsFlag string
		opponentsFlag string
		mapName string
		tickCap int
		budgetSeconds int
		artifactDir string
	)

	cmd := &cobra.Command{
		Use: "run",
		Short: "Run a benchmark tournament and write its BenchmarkRun artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := config.LoadPlan(planPath)
			if err != nil {
				return newConfigError("load plan: %v", err)
			}

			if games > 0 {
				plan.GamesPerPair = games
			}
			if agentsFlag != "" {
				agents, err := parseAgents(agentsFlag)
				if err != nil {
					return newConfigError("--agents: %v", err)
				}
				plan.Agents = agents
			}
			if opponentsFlag != "" {
				opponents, err := parseOpponents(opponentsFlag)
				if err != nil {
					return newConfigError("--opponents: %v", err)
				}
				plan.OpponentsInLine = opponents
			}
			if mapName != "" {
				plan.Map = mapName
			}
			if tickCap > 0 {
				plan.TickCap = tickCap
			}
			if budgetSeconds > 0 {
				plan.PerGameBudget = time.Duration(budgetSeconds) * time.Second
			}
			if artifactDir != "" {
				plan.ArtifactDir = artifactDir
			}

			if err := validatePlan(plan); err != nil {
				return newConfigError("%v", err)
			}
			if _, err := exec.LookPath("gamerunner"); err != nil {
				return newPrerequisiteError("gamerunner binary not found on PATH: %v", err)
			}
			if err := os.MkdirAll(plan.ArtifactDir, 0o755); err != nil {
				return newPrerequisiteError("create artifact dir: %v", err)
			}

			logger := telemetry.NewClueLogger()
			tracer := telemetry.NewClueTracer()
			metrics := telemetry.NewClueMetrics()

			run, err := tournament.RunTournament(cmd.Context(), plan, logger, tracer, metrics)
			if err != nil {
				return fmt.Errorf("run tournament: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "benchmark run complete: %d agent entries, %d matchup records\n",
				len(run.Entries), len(run.Records))
			return nil
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "path to a plan.yaml describing agents, opponents, and map")
	cmd.Flags().IntVar(&games, "games", 0, "games per matchup (overrides plan.yaml)")
	cmd.Flags().StringVar(&agentsFlag, "agents", "", "comma-separated agent selector: name:architecture:class...")
	cmd.Flags().StringVar(&opponentsFlag, "opponents", "", "ordered comma-separated opponent ladder: name:class:weight...")
	cmd.Flags().StringVar(&mapName, "map", "", "map name (overrides plan.yaml)")
	cmd.Flags().IntVar(&tickCap, "tick-cap", 0, "max ticks per game (overrides plan.yaml)")
	cmd.Flags().IntVar(&budgetSeconds, "budget-seconds", 0, "wall-clock budget per game, in seconds")
	cmd.Flags().StringVar(&artifactDir, "artifacts", "", "directory to write run-*.json/.md artifacts to")

	return cmd
}

func validatePlan(plan tournament.Plan) error {
	if len(plan.Agents) == 0 {
		return fmt.Errorf("no agents configured: pass --agents or set agents in plan.yaml")
	}
	if len(plan.OpponentsInLine) == 0 {
		return fmt.Errorf("no opponents configured: pass --opponents or set opponents in plan.yaml")
	}
	if plan.ArtifactDir == "" {
		return fmt.Errorf("no artifact directory configured: pass --artifacts")
	}
	if plan.TickCap <= 0 {
		return fmt.Errorf("tick-cap must be positive, got %d", plan.TickCap)
	}
	return nil
}

// parseAgents decodes "name:architecture:class" entries separated by commas.
func parseAgents(raw string) ([]tournament.Agent, error) {
	var agents []tournament.Agent
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("expected name:architecture:class, got %q", entry)
		}
		agents = append(agents, tournament.Agent{DisplayName: parts[0], Architecture: parts[1], Class: parts[2]})
	}
	return agents, nil
}

// parseOpponents decodes "name:class:weight" entries separated by commas,
// in ladder order (the order is the elimination sequence).
func parseOpponents(raw string) ([]tournament.Opponent, error) {
	var opponents []tournament.Opponent
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("expected name:class:weight, got %q", entry)
		}
		var weight float64
		if _, err := fmt.Sscanf(parts[2], "%f", &weight); err != nil {
			return nil, fmt.Errorf("weight %q: %v", parts[2], err)
		}
		opponents = append(opponents, tournament.Opponent{Name: parts[0], Class: parts[1], Weight: weight})
	}
	return opponents, nil
}
