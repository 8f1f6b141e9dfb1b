package main

import (
	"context"
	"fmt"
	"time"
	"uri-title/internal/app"
	"uri-title/internal/domain/config"
	"uri-title/internal/urlvalidator"
	"uri-title/internal/utils"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

type globalFlags struct {
	configPath string
	logLevel   string
	dev        bool
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "uri-title",
		Short:        "Fetch web page titles without reaching into local networks",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.dev, "dev", false, "human readable development logging")

	cmd.AddCommand(titleCmd(flags), validateCmd(), reverseCmd())

	return cmd
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	if flags.dev {
		cfg.Log.Development = true
	}

	return cfg, nil
}

func titleCmd(flags *globalFlags) *cobra.Command {
	var (
		fallback    string
		rejectEmpty bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "title <url>",
		Short: "Print the <title> of the page at url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("reject-empty") {
				cfg.RejectEmptyTitle = rejectEmpty
			}

			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = timeout
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			titleApp, err := app.InitApp(cfg)
			if err != nil {
				return err
			}
			defer stopApp(titleApp)

			title, err := titleApp.FetchTitle(cmd.Context(), args[0])
			if err != nil {
				if !cmd.Flags().Changed("fallback") {
					return fmt.Errorf("failed to get URL title: %w", err)
				}
				title = fallback
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), title)
			return err
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", "", "print this instead of failing when no title can be fetched")
	cmd.Flags().BoolVar(&rejectEmpty, "reject-empty", false, "treat an empty <title> as an error")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultRequestTimeout, "total request timeout")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <url>",
		Short: "Check whether url may be fetched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := urlvalidator.Validate(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), u.String())
			return err
		},
	}
}

func reverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <line>",
		Short: "Print line with its characters reversed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), utils.ReverseLine(args[0]))
			return err
		},
	}
}

func stopApp(a app.App) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = a.StopApp(ctx)
}
