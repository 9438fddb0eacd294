package main

import "github.com/spf13/cobra"

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Email members whose picks are incomplete before the deadline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		summary, err := svc.Reminders.SendDeadlineReminders(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]int{"weeks": summary.Weeks, "sent": summary.Sent, "failed": summary.Failed})
	},
}
