package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/cli/pkg/output"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/config"
)

var cfg *config.CLIConfig

// NewRootCmd builds the churnctl command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "churnctl",
		Short: "Churn prediction CLI",
		Long: `churnctl scores customers against the churn prediction service.

Fill in the same controls as the dashboard form as flags, and get the
churn probability back with its risk tier.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadCLIFrom(cfgFile)
			} else {
				cfg, err = config.LoadCLI()
			}
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.churnctl/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "prediction service base URL (overrides config)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format: text, json (default from config)")

	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		output.Error(rootCmd.ErrOrStderr(), "%s", err.Error())
	}
	return err
}

func apiURL(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		return u
	}
	return cfg.APIURL
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = cfg.Output
	}
	switch format {
	case "", "text":
		return "text", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use text or json)", format)
	}
}
