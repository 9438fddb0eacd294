package main

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	"github.com/spf13/cobra"
)

type weekView struct {
	Season    int        `json:"season"`
	Week      int        `json:"week"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	PicksOpen bool       `json:"picks_open"`
	IsLocked  bool       `json:"is_locked"`
}

func toWeekView(s weeksettings.Settings) weekView {
	return weekView{Season: s.Season, Week: s.Week, Deadline: s.Deadline, PicksOpen: s.PicksOpen, IsLocked: s.IsLocked}
}

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "Open and lock pick windows",
}

var weeksLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Lock a week so picks can no longer change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		s, err := svc.Weeks.Lock(cmd.Context(), seasonWeekFlags.Season, seasonWeekFlags.Week)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), toWeekView(s))
	},
}

var weeksOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a week for picks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		s, err := svc.Weeks.Open(cmd.Context(), seasonWeekFlags.Season, seasonWeekFlags.Week)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), toWeekView(s))
	},
}

var weeksLockExpiredCmd = &cobra.Command{
	Use:   "lock-expired",
	Short: "Lock every week whose deadline has passed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		locked, err := svc.Weeks.LockExpired(cmd.Context())
		if err != nil {
			return err
		}
		views := make([]weekView, 0, len(locked))
		for _, s := range locked {
			views = append(views, toWeekView(s))
		}
		return printJSON(cmd.OutOrStdout(), views)
	},
}

func init() {
	addSeasonWeekFlags(weeksLockCmd)
	addSeasonWeekFlags(weeksOpenCmd)
	weeksCmd.AddCommand(weeksLockCmd, weeksOpenCmd, weeksLockExpiredCmd)
}
