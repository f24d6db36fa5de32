// Package config loads the benchmark plan and agent runtime settings from
// layered sources (flags > environment > plan.yaml) using viper to merge a
// YAML-backed configuration value with environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/llmrts/arena/tournament"
)

// PlanFile is the on-disk shape of a benchmark plan.yaml, matching
// tournament.Plan's fields under snake_case keys.
type PlanFile struct {
	ArenaVersion string `mapstructure:"arena_version"`
	Agents []AgentFile `mapstructure:"agents"`
	OpponentsInLine []OpponentFile `mapstructure:"opponents"`
	Map string `mapstructure:"map"`
	TickCap int `mapstructure:"tick_cap"`
	GamesPerPair int `mapstructure:"games_per_pair"`
	BudgetSeconds int `mapstructure:"budget_seconds"`
	ArtifactDir string `mapstructure:"artifacts"`
	ModelHost string `mapstructure:"model_host"`
	ModelName string `mapstructure:"model_name"`
	ModelNameP2 string `mapstructure:"model_name_p2"`
	MaxParallel int `mapstructure:"max_parallel"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// AgentFile is one plan.yaml agent entry.
type AgentFile struct {
	DisplayName string `mapstructure:"display_name"`
	Architecture string `mapstructure:"architecture"`
	Class string `mapstructure:"class"`
}

// OpponentFile is one plan.yaml opponent ladder entry.
type OpponentFile struct {
	Name string `mapstructure:"name"`
	Class string `mapstructure:"class"`
	Weight float64 `mapstructure:"weight"`
}

// LoadPlan reads a benchmark plan from planPath (if non-empty) layered
// under environment variables (ARENA_* prefix) via viper, then converts it
// to a tournament.Plan. CLI flags are applied by the caller after this
// returns, taking precedence over both.
func LoadPlan(planPath string) (tournament.Plan, error) {
	v := viper.New()
	v.SetEnvPrefix("ARENA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only intercepts keys viper already knows about (from a
	// default, the config file, or an explicit bind); bind every field a
	// caller might set purely through the environment so Unmarshal sees it
	// even when plan.yaml never mentions it.
	for _, key := range []string{"model_host", "model_name", "model_name_p2", "map", "tick_cap", "redis_addr"} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("arena_version", "v2")
	v.SetDefault("tick_cap", 1500)
	v.SetDefault("games_per_pair", 1)
	v.SetDefault("budget_seconds", 60)
	v.SetDefault("artifacts", "./artifacts")
	v.SetDefault("max_parallel", 1)

	if planPath != "" {
		v.SetConfigFile(planPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return tournament.Plan{}, fmt.Errorf("config: read plan file %s: %w", planPath, err)
		}
	}

	var file PlanFile
	if err := v.Unmarshal(&file); err != nil {
		return tournament.Plan{}, fmt.Errorf("config: decode plan: %w", err)
	}

	return file.toPlan(), nil
}

func (f PlanFile) toPlan() tournament.Plan {
	plan := tournament.Plan{
		ArenaVersion: f.ArenaVersion,
		Map: f.Map,
		TickCap: f.TickCap,
		GamesPerPair: f.GamesPerPair,
		PerGameBudget: time.Duration(f.BudgetSeconds) * time.Second,
		ArtifactDir: f.ArtifactDir,
		ModelHost: f.ModelHost,
		ModelName: f.ModelName,
		ModelNameP2: f.ModelNameP2,
		MaxParallel: f.MaxParallel,
		RedisAddr: f.RedisAddr,
	}
	for _, a := range f.Agents {
		plan.Agents = append(plan.Agents, tournament.Agent{DisplayName: a.DisplayName, Architecture: a.Architecture, Class: a.Class})
	}
	for _, o := range f.OpponentsInLine {
		plan.OpponentsInLine = append(plan.OpponentsInLine, tournament.Opponent{Name: o.Name, Class: o.Class, Weight: o.Weight})
	}
	return plan
}
