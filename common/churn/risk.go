package churn

import "fmt"

// Tier is the presentation bucket for a churn probability.
type Tier int

const (
	TierLow Tier = iota
	TierElevated
	TierHigh
)

const (
	highRiskThreshold     = 0.7
	elevatedRiskThreshold = 0.4

	// HighRiskAdvisory accompanies every High Risk result.
	HighRiskAdvisory = "Action Required: High-priority retention offer recommended."
)

// ClassifyRisk maps a probability to its tier. Both bounds are exclusive:
// 0.70 is Elevated and 0.40 is Low.
func ClassifyRisk(p float64) Tier {
	switch {
	case p > highRiskThreshold:
		return TierHigh
	case p > elevatedRiskThreshold:
		return TierElevated
	default:
		return TierLow
	}
}

// Label returns the headline shown for the tier.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "High Risk"
	case TierElevated:
		return "Elevated Risk"
	default:
		return "Low Risk"
	}
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return t.Label()
}

// Slug is a stable lowercase identifier, used for CSS classes and JSON.
func (t Tier) Slug() string {
	switch t {
	case TierHigh:
		return "high"
	case TierElevated:
		return "elevated"
	default:
		return "low"
	}
}

// Advisory returns the follow-up message for the tier, if any.
func (t Tier) Advisory() string {
	if t == TierHigh {
		return HighRiskAdvisory
	}
	return ""
}

// FormatPercent renders a probability as a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// Assessment is a prediction ready for display.
type Assessment struct {
	Probability float64 `json:"probability"`
	Percent     string  `json:"percent"`
	Tier        string  `json:"tier"`
	Headline    string  `json:"headline"`
	Advisory    string  `json:"advisory,omitempty"`
	Prediction  int     `json:"churn_prediction"`
	Engine      string  `json:"engine"`
}

// Assess builds the display view of a prediction.
func Assess(p *Prediction) Assessment {
	tier := ClassifyRisk(p.Probability)
	return Assessment{
		Probability: p.Probability,
		Percent:     FormatPercent(p.Probability),
		Tier:        tier.Slug(),
		Headline:    tier.Label(),
		Advisory:    tier.Advisory(),
		Prediction:  p.ChurnPrediction,
		Engine:      p.Engine,
	}
}
