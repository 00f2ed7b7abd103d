package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/cli/pkg/output"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/churn"
)

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the valid value of every prediction control",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			controls := churn.Controls()
			if format == "json" {
				return output.JSON(cmd.OutOrStdout(), controls)
			}

			table := output.NewTable([]string{"CONTROL", "KEY", "CHOICES", "DEFAULT"})
			for _, c := range controls {
				table.AddRow([]string{c.Label, c.Key, strings.Join(c.Choices, " | "), c.Default})
			}
			table.Render(cmd.OutOrStdout())
			return nil
		},
	}
}
