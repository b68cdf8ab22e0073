package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command, which prints the effective
// configuration after every layer has been applied.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := GetConfig(cmd.Context()).Dump()
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
