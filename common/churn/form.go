// Package churn holds the client-side model of a churn prediction request:
// the form controls, the wire keys they map to, the risk tiers used to
// present a result, and an HTTP client for the inference service.
package churn

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Feature keys expected by the model pipeline.
const (
	KeyGender        = "Gender"
	KeySeniorCitizen = "Senior Citizen"
	KeyTenure        = "Tenure in Months"
	KeyContract      = "Contract"
	KeyPaymentMethod = "Payment Method"
	KeyMonthlyCharge = "Monthly Charge"
)

// Tenure slider bounds, in months.
const (
	MinTenure = 0
	MaxTenure = 72
)

var (
	GenderOptions        = []string{"Male", "Female"}
	SeniorCitizenOptions = []string{"Yes", "No"}
	ContractOptions      = []string{"Month-to-month", "One year", "Two year"}
	PaymentMethodOptions = []string{"Electronic check", "Mailed check", "Bank transfer", "Credit card"}
)

// FeatureRecord is the unvalidated key-value payload sent under "data".
type FeatureRecord map[string]any

// Form is the set of inputs a user fills in to request a prediction.
type Form struct {
	Gender        string  `json:"gender"`
	SeniorCitizen string  `json:"senior_citizen"`
	Tenure        int     `json:"tenure"`
	Contract      string  `json:"contract"`
	PaymentMethod string  `json:"payment_method"`
	MonthlyCharge float64 `json:"monthly_charge"`
}

// DefaultForm returns the initial state of every control.
func DefaultForm() Form {
	return Form{
		Gender:        GenderOptions[0],
		SeniorCitizen: SeniorCitizenOptions[0],
		Tenure:        12,
		Contract:      ContractOptions[0],
		PaymentMethod: PaymentMethodOptions[0],
		MonthlyCharge: 50.0,
	}
}

// Validate checks every control against its allowed choices or range.
// All problems are reported together.
func (f Form) Validate() error {
	var problems []string

	check := func(label, value string, options []string) {
		if !slices.Contains(options, value) {
			problems = append(problems, fmt.Sprintf("%s must be one of %s, got %q",
				label, strings.Join(options, ", "), value))
		}
	}
	check("gender", f.Gender, GenderOptions)
	check("senior citizen", f.SeniorCitizen, SeniorCitizenOptions)
	check("contract", f.Contract, ContractOptions)
	check("payment method", f.PaymentMethod, PaymentMethodOptions)

	if f.Tenure < MinTenure || f.Tenure > MaxTenure {
		problems = append(problems, fmt.Sprintf("tenure must be between %d and %d months, got %d",
			MinTenure, MaxTenure, f.Tenure))
	}
	if math.IsNaN(f.MonthlyCharge) || math.IsInf(f.MonthlyCharge, 0) {
		problems = append(problems, "monthly charge must be a finite number")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid input: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Record assembles the form into the key-value record the model expects.
func (f Form) Record() FeatureRecord {
	return FeatureRecord{
		KeyGender:        f.Gender,
		KeySeniorCitizen: f.SeniorCitizen,
		KeyTenure:        f.Tenure,
		KeyContract:      f.Contract,
		KeyPaymentMethod: f.PaymentMethod,
		KeyMonthlyCharge: f.MonthlyCharge,
	}
}

// Control describes one input for listing purposes.
type Control struct {
	Label   string
	Key     string
	Choices []string
	Default string
}

// Controls lists every input with its wire key and valid choices.
func Controls() []Control {
	d := DefaultForm()
	return []Control{
		{Label: "Gender", Key: KeyGender, Choices: GenderOptions, Default: d.Gender},
		{Label: "Senior Citizen", Key: KeySeniorCitizen, Choices: SeniorCitizenOptions, Default: d.SeniorCitizen},
		{Label: "Tenure (Months)", Key: KeyTenure, Choices: []string{fmt.Sprintf("%d..%d", MinTenure, MaxTenure)}, Default: fmt.Sprint(d.Tenure)},
		{Label: "Contract Type", Key: KeyContract, Choices: ContractOptions, Default: d.Contract},
		{Label: "Payment Method", Key: KeyPaymentMethod, Choices: PaymentMethodOptions, Default: d.PaymentMethod},
		{Label: "Monthly Charges", Key: KeyMonthlyCharge, Choices: []string{"any number"}, Default: fmt.Sprintf("%.2f", d.MonthlyCharge)},
	}
}
