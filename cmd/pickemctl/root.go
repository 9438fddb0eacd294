package main

import (
	"fmt"
	"io"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/app"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	EnvFile  string
	LogLevel string
}

// state is filled by the root PersistentPreRunE.
var state struct {
	cfg      config.Config
	logger   *logging.Logger
	services *app.Services
}

var rootCmd = &cobra.Command{
	Use:   "pickemctl",
	Short: "Administer the pick'em league from the command line",
	Example: `pickemctl migrate up
  pickemctl scores set w1-bama-fsu 31 17
  pickemctl weeks lock --season 2025 --week 3
  pickemctl email send --to fan@example.com --subject "Week 3" --html "<p>Picks due</p>"`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(rootFlags.EnvFile); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if strings.TrimSpace(rootFlags.LogLevel) != "" {
			if cfg.LogLevel, err = logging.ParseLevel(rootFlags.LogLevel); err != nil {
				return fmt.Errorf("parse --log-level: %w", err)
			}
		}
		state.cfg = cfg
		state.logger = logging.New(cfg.LogLevel, logging.FormatConsole).Named("pickemctl")
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		state.services.Close()
		if state.logger != nil {
			_ = state.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&rootFlags.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides APP_LOG_LEVEL")

	rootCmd.AddCommand(migrateCmd, scoresCmd, weeksCmd, emailCmd, leaderboardCmd, remindersCmd)
}

// services builds the usecase layer on first use so migrate never opens
// a pool.
func services(cmd *cobra.Command) (*app.Services, error) {
	if state.services != nil {
		return state.services, nil
	}
	svc, err := app.NewServices(cmd.Context(), state.cfg, state.logger)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}
	state.services = svc
	return svc, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
