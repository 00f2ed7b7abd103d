package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/cli/pkg/output"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/churn"
)

func newPredictCmd() *cobra.Command {
	form := churn.DefaultForm()

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one customer",
		Long:  "Send one customer's attributes to the prediction service and show the churn risk tier.",
		Example: `  # Defaults for every control
  churnctl predict

  # A long-standing customer on a two year contract
  churnctl predict --tenure 60 --contract "Two year" --payment-method "Credit card"

  # Machine-readable result
  churnctl predict --gender Female --monthly-charge 89.9 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}

			client := churn.NewClient(apiURL(cmd), cfg.Timeout)
			prediction, err := client.Predict(cmd.Context(), form.Record())
			if err != nil {
				return errors.New(churn.ConnectionError(err))
			}

			assessment := churn.Assess(prediction)
			if format == "json" {
				return output.JSON(cmd.OutOrStdout(), assessment)
			}
			output.Assessment(cmd.OutOrStdout(), assessment)
			return nil
		},
	}

	f := predictCmd.Flags()
	f.StringVar(&form.Gender, "gender", form.Gender, "gender: Male, Female")
	f.StringVar(&form.SeniorCitizen, "senior", form.SeniorCitizen, "senior citizen: Yes, No")
	f.IntVar(&form.Tenure, "tenure", form.Tenure, "tenure in months (0-72)")
	f.StringVar(&form.Contract, "contract", form.Contract, "contract: Month-to-month, One year, Two year")
	f.StringVar(&form.PaymentMethod, "payment-method", form.PaymentMethod, "payment method: Electronic check, Mailed check, Bank transfer, Credit card")
	f.Float64Var(&form.MonthlyCharge, "monthly-charge", form.MonthlyCharge, "monthly charges")

	return predictCmd
}
