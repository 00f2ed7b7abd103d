package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/cli/pkg/output"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change churnctl configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if format == "json" {
				return output.JSON(cmd.OutOrStdout(), map[string]string{
					"api_url": cfg.APIURL,
					"timeout": cfg.Timeout.String(),
					"output":  cfg.Output,
					"path":    cfg.Path(),
				})
			}

			table := output.NewTable([]string{"KEY", "VALUE"})
			table.AddRow([]string{"api_url", cfg.APIURL})
			table.AddRow([]string{"timeout", cfg.Timeout.String()})
			table.AddRow([]string{"output", cfg.Output})
			table.AddRow([]string{"path", cfg.Path()})
			table.Render(cmd.OutOrStdout())
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:     "set-url <url>",
		Short:   "Set the prediction service base URL",
		Example: "  churnctl config set-url http://predict.internal:8000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid url %q: expected http(s)://host[:port]", args[0])
			}
			if err := cfg.SetAPIURL(args[0]); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			output.Success(cmd.OutOrStdout(), "API URL set to %s (%s)", args[0], cfg.Path())
			return nil
		},
	})

	return configCmd
}
