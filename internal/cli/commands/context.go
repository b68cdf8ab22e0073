// Package commands implements the salarydash subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/paveg/salarydash/internal/config"
	"github.com/paveg/salarydash/internal/dataset"
	sio "github.com/paveg/salarydash/internal/io"
	"github.com/spf13/cobra"
)

type configKey struct{}

type loggerKey struct{}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetConfig retrieves the config from the command context, falling back to
// the defaults.
func GetConfig(ctx context.Context) config.Config {
	if c, ok := ctx.Value(configKey{}).(config.Config); ok {
		return c
	}
	return config.NewConfig()
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// loadDataset fetches the configured data source. A progress bar is drawn on
// stderr for remote sources unless quiet is set.
func loadDataset(cmd *cobra.Command, quiet bool) (*dataset.Dataset, error) {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	opts := sio.SourceOptions{
		Timeout: cfg.FetchTimeout,
		Logger:  logger,
	}

	var bar *pb.ProgressBar
	if !quiet && sio.IsRemote(cfg.DataSource) {
		opts.Progress = func(r io.Reader, size int64) io.Reader {
			// Zero total draws a counter without a percentage.
			bar = pb.New64(max(size, 0)).
				Set(pb.Bytes, true).
				SetWriter(cmd.ErrOrStderr()).
				Start()
			return bar.NewProxyReader(r)
		}
	}

	ds, err := sio.Load(cmd.Context(), cfg.DataSource, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded", "source", cfg.DataSource, "records", ds.Len())
	return ds, nil
}
