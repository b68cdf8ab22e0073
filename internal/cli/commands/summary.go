package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/paveg/salarydash/internal/dashboard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command, which prints the dashboard
// for a selection to the terminal.
func NewSummaryCommand() *cobra.Command {
	var (
		asJSON bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print dashboard metrics and charts as tables",
		Long: `Load the dataset, apply the selection given by the column flags and print
the general metrics followed by every chart as a table.

Examples:
  salarydash summary
  salarydash summary --year 2023 --seniority senior,pleno
  salarydash summary --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := selectionFromFlags(cmd)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, quiet)
			if err != nil {
				return err
			}

			builder := dashboard.NewBuilder(GetConfig(cmd.Context()), nil, GetLogger(cmd.Context()))
			d := builder.Build(ds, sel)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			printDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}

	addSelectionFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the download progress bar")
	return cmd
}

func printDashboard(w io.Writer, d *dashboard.Dashboard) {
	heading(w, "General metrics (annual salary in USD)")
	if d.Empty {
		fmt.Fprintln(w, pterm.Yellow(d.Message))
	}
	renderTable(w, table.Row{"Metric", "Value"}, []table.Row{
		{"Mean salary", colorizeSalary(d.Summary.MeanSalary)},
		{"Maximum salary", colorizeSalary(d.Summary.MaxSalary)},
		{"Total records", humanize.Comma(int64(d.Summary.Count))},
		{"Most frequent role", d.Summary.TopRole},
	})

	for _, c := range d.Charts {
		heading(w, c.Title)
		if c.Empty {
			fmt.Fprintln(w, pterm.Yellow(c.Message))
			continue
		}
		printChart(w, c)
	}
}

func printChart(w io.Writer, c dashboard.Chart) {
	var rows []table.Row
	switch c.Kind {
	case dashboard.KindHistogram:
		for _, b := range c.Bins {
			rows = append(rows, table.Row{dashboard.Money(b.Start) + " to " + dashboard.Money(b.End), humanize.Comma(int64(b.Count))})
		}
		renderTable(w, table.Row{"Salary range", "Records"}, rows)
	case dashboard.KindPie:
		for _, p := range c.Points {
			rows = append(rows, table.Row{p.Label, humanize.Comma(int64(p.Count)), fmt.Sprintf("%.1f%%", p.Share*100)})
		}
		renderTable(w, table.Row{"Arrangement", "Records", "Share"}, rows)
	default:
		label := "Role"
		if c.Kind == dashboard.KindChoropleth {
			label = c.XLabel
		}
		for _, p := range c.Points {
			rows = append(rows, table.Row{p.Label, colorizeSalary(p.Value), humanize.Comma(int64(p.Count))})
		}
		renderTable(w, table.Row{label, "Mean salary", "Records"}, rows)
	}
}
