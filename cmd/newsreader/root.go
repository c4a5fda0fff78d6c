package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/config"
	"github.com/Harsha6202/personalized-news-sentiment/pkg/logger"
)

// Global flags available to all subcommands.
var (
	logLevel string
	pretty   bool
)

// NewRootCmd creates the root command for the newsreader CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsreader",
		Short: "Personalized news reader client",
		Long: `newsreader signs you in to the news API, keeps the session across runs
and serves a local JSON API with route guarding for the reader UI.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-friendly log output")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewDevAPICmd())
	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewVerifyEmailCmd())
	cmd.AddCommand(NewResendVerificationCmd())

	return cmd
}

// setup loads configuration and initialises the logger for service.
func setup(cmd *cobra.Command, service string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log := logger.Init(logger.Options{
		Level:   level,
		Pretty:  pretty || !cfg.IsProduction(),
		Output:  cmd.ErrOrStderr(),
		Service: service,
	})
	return cfg, log, nil
}
