package main

import (
	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/spf13/cobra"
)

var leaderboardFlags struct {
	Season int
	Week   int
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print season or weekly standings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		var entries []leaderboard.Entry
		if leaderboardFlags.Week > 0 {
			entries, err = svc.Leaderboard.Week(cmd.Context(), leaderboardFlags.Season, leaderboardFlags.Week)
		} else {
			entries, err = svc.Leaderboard.Season(cmd.Context(), leaderboardFlags.Season)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), entries)
	},
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardFlags.Season, "season", 0, "season year")
	leaderboardCmd.Flags().IntVar(&leaderboardFlags.Week, "week", 0, "week number; omit for the whole season")
	_ = leaderboardCmd.MarkFlagRequired("season")
}
