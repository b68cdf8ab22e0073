// Package cli provides the command-line interface for salarydash.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/paveg/salarydash/internal/cli/commands"
	"github.com/paveg/salarydash/internal/config"
	"github.com/paveg/salarydash/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "salarydash",
		Short: "salarydash - data industry salary dashboard",
		Long: `salarydash loads a snapshot of data industry salaries and explores it
through four filters: year, seniority, contract and company size.

It serves an HTML dashboard and JSON API, prints the same metrics and charts
in the terminal, and exports filtered records as CSV, JSON or Parquet.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := NewLogger(cmd.ErrOrStderr(), cfg)
			if used != "" {
				logger.Debug("using config file", "path", used)
			}

			ctx := commands.WithConfig(cmd.Context(), cfg)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	defaults := config.NewConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./salarydash.yaml)")
	pf.String("data-source", defaults.DataSource, "dataset URL or local .csv/.parquet path")
	pf.Int("port", defaults.Port, "HTTP port for serve")
	pf.Int("top-n", defaults.TopN, "number of roles in the top roles chart")
	pf.Int("histogram-bins", defaults.HistogramBins, "number of salary histogram bins")
	pf.Duration("fetch-timeout", defaults.FetchTimeout, "time limit for loading the dataset (0 for none)")
	pf.Int("workers", defaults.Workers, "goroutines computing per-country charts (0 for one per CPU, 1 to disable)")
	pf.Bool("metrics-collection", defaults.MetricsCollection, "record per-stage timings served on /metrics")
	pf.BoolP("verbose", "v", defaults.Verbose, "verbose output")
	pf.String("log-format", defaults.LogFormat, "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.LogFormatText, config.LogFormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewOptionsCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// NewLogger builds the slog logger described by cfg, writing to w.
func NewLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Execute runs the root command until it finishes or the process receives
// an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
