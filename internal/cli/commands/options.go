package commands

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/paveg/salarydash/internal/dataset"
	"github.com/spf13/cobra"
)

// NewOptionsCommand creates the options command, which lists the values
// each filter accepts.
func NewOptionsCommand() *cobra.Command {
	var (
		asJSON bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the distinct values of every filterable column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(cmd, quiet)
			if err != nil {
				return err
			}
			opts := dataset.OptionsOf(ds)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), opts)
			}

			years := make([]string, len(opts.Years))
			for i, y := range opts.Years {
				years[i] = strconv.Itoa(y)
			}
			renderTable(cmd.OutOrStdout(), table.Row{"Column", "Values"}, []table.Row{
				{string(dataset.ColumnYear), strings.Join(years, ", ")},
				{string(dataset.ColumnSeniority), strings.Join(opts.Seniorities, ", ")},
				{string(dataset.ColumnContract), strings.Join(opts.Contracts, ", ")},
				{string(dataset.ColumnCompanySize), strings.Join(opts.CompanySizes, ", ")},
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the options as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the download progress bar")
	return cmd
}
