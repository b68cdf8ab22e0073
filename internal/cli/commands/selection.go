package commands

import (
	"strings"

	"github.com/paveg/salarydash/internal/dataset"
	"github.com/spf13/cobra"
)

// addSelectionFlags registers one repeatable flag per filterable column.
// Passing a flag with an empty value selects nothing for that column.
func addSelectionFlags(cmd *cobra.Command) {
	for _, c := range dataset.FilterColumns {
		cmd.Flags().StringSlice(flagName(c), nil, "allowed "+strings.ReplaceAll(string(c), "_", " ")+" values (repeatable, comma separated)")
	}
}

// selectionFromFlags builds a selection from the column flags that were set.
func selectionFromFlags(cmd *cobra.Command) (dataset.Selection, error) {
	wire := make(map[string][]string)
	for _, c := range dataset.FilterColumns {
		f := cmd.Flags().Lookup(flagName(c))
		if f == nil || !f.Changed {
			continue
		}
		vals, err := cmd.Flags().GetStringSlice(f.Name)
		if err != nil {
			return dataset.Selection{}, err
		}
		wire[string(c)] = vals
	}
	return dataset.ParseSelection(wire)
}

func flagName(c dataset.Column) string {
	return strings.ReplaceAll(string(c), "_", "-")
}
