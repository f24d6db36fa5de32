package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llmrts/arena/leaderboard"
	"github.com/llmrts/arena/telemetry"
)

func consolidateCmd() *cobra.Command {
	var artifactDir string

	cmd := &cobra.Command{
		Use: "consolidate",
		Short: "Fold every run-*.json artifact in a directory into leaderboard.json/.md",
		RunE: func(cmd *cobra.Command, args []string) error {
			if artifactDir == "" {
				return newConfigError("--artifacts is required")
			}

			logger := telemetry.NewClueLogger()
			board, err := leaderboard.Consolidate(cmd.Context(), artifactDir, logger)
			if err != nil {
				return fmt.Errorf("consolidate: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "leaderboard consolidated: %d ranked entries, %d history rows\n",
				len(board.Leaderboard), len(board.History))
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactDir, "artifacts", "", "directory containing run-*.json artifacts")
	return cmd
}
