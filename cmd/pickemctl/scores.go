package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var seasonWeekFlags struct {
	Season int
	Week   int
}

func addSeasonWeekFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&seasonWeekFlags.Season, "season", 0, "season year")
	cmd.Flags().IntVar(&seasonWeekFlags.Week, "week", 0, "week number")
	_ = cmd.MarkFlagRequired("season")
	_ = cmd.MarkFlagRequired("week")
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Record final scores and grade picks",
}

var scoresSetCmd = &cobra.Command{
	Use:   "set <game-id> <home-score> <away-score>",
	Short: "Record a final score and grade the game's picks",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid home score %q", args[1])
		}
		away, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid away score %q", args[2])
		}
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		g, summary, err := svc.Games.RecordScore(cmd.Context(), args[0], home, away)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"game_id":    g.ID,
			"home_score": home,
			"away_score": away,
			"graded":     summary.Picks,
			"failed":     summary.Failed,
		})
	},
}

var scoresResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a week's scores and return its picks to pending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		summary, err := svc.Games.ResetWeekScores(cmd.Context(), seasonWeekFlags.Season, seasonWeekFlags.Week)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]int{"games": summary.Games, "picks": summary.Picks})
	},
}

var scoresRegradeCmd = &cobra.Command{
	Use:   "regrade",
	Short: "Grade every pick of a week again from the stored scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		summary, err := svc.Games.RegradeWeek(cmd.Context(), seasonWeekFlags.Season, seasonWeekFlags.Week)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]int{"games": summary.Games, "picks": summary.Picks, "failed": summary.Failed})
	},
}

func init() {
	addSeasonWeekFlags(scoresResetCmd)
	addSeasonWeekFlags(scoresRegradeCmd)
	scoresCmd.AddCommand(scoresSetCmd, scoresResetCmd, scoresRegradeCmd)
}
