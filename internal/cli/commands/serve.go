package commands

import (
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/paveg/salarydash/internal/monitoring"
	"github.com/paveg/salarydash/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command, which loads the dataset once
// and serves the dashboard until interrupted.
func NewServeCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and JSON API over HTTP",
		Long: `Load the dataset and start the HTTP server.

Routes:
  GET  /                 HTML dashboard, filtered by the query string
  GET  /api/options      distinct values per filterable column
  GET  /api/dashboard    metrics and chart payloads (POST accepts a JSON selection)
  GET  /api/records      filtered records (?format=csv|json|jsonl|parquet)
  GET  /metrics          per-stage timings when metrics collection is on
  GET  /health           health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())

			ds, err := loadDataset(cmd, quiet)
			if err != nil {
				return err
			}

			collector := monitoring.NewMetricsCollector(cfg.MetricsCollection)
			srv := server.New(server.Config{
				Dataset:   ds,
				Builder:   dashboard.NewBuilder(cfg, collector, logger),
				Collector: collector,
				Port:      cfg.Port,
				Logger:    logger,
			})
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the download progress bar")
	return cmd
}
