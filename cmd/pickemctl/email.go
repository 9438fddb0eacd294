package main

import (
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/spf13/cobra"
)

var emailFlags struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	From    string
}

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send league email through the configured provider",
}

var emailSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one email",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := services(cmd)
		if err != nil {
			return err
		}
		result, err := svc.Email.Send(cmd.Context(), email.Message{
			To:      emailFlags.To,
			Subject: emailFlags.Subject,
			HTML:    emailFlags.HTML,
			Text:    emailFlags.Text,
			From:    emailFlags.From,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"success": result.Success, "messageId": result.MessageID})
	},
}

func init() {
	f := emailSendCmd.Flags()
	f.StringSliceVar(&emailFlags.To, "to", nil, "recipient address (repeatable)")
	f.StringVar(&emailFlags.Subject, "subject", "", "subject line")
	f.StringVar(&emailFlags.HTML, "html", "", "HTML body")
	f.StringVar(&emailFlags.Text, "text", "", "plain-text alternative")
	f.StringVar(&emailFlags.From, "from", "", "sender; defaults to EMAIL_FROM")
	_ = emailSendCmd.MarkFlagRequired("to")
	_ = emailSendCmd.MarkFlagRequired("subject")
	_ = emailSendCmd.MarkFlagRequired("html")
	emailCmd.AddCommand(emailSendCmd)
}
