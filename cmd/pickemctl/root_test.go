package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	for _, name := range []string{"migrate", "scores", "weeks", "email", "leaderboard", "reminders"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
	}
}
