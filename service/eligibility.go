package service

import (
	"fmt"
	"math"

	"planportal/models"
)

// EligibilityResult is the verdict of the pre-application eligibility check
type EligibilityResult struct {
	Eligible      bool     `json:"eligible"`
	Reasons       []string `json:"reasons"`
	MinLoanAmount float64  `json:"min_loan_amount"`
	MaxLoanAmount float64  `json:"max_loan_amount"`
}

// EvaluateEligibility determines whether the participant may borrow and the
// effective borrowable range. All failing rules are reported together rather
// than short-circuiting on the first. Callers must re-run this before every
// navigation into the workflow since the vested balance may have changed.
func EvaluateEligibility(participant *models.ParticipantContext, plan *models.PlanConfig) *EligibilityResult {
	var reasons []string

	if !participant.IsEnrolled {
		reasons = append(reasons, "you must be enrolled in the plan to request a loan")
	}
	if participant.VestedBalance <= 0 {
		reasons = append(reasons, "your vested balance must be greater than zero")
	}

	effectiveMax := math.Min(participant.VestedBalance*plan.MaxLoanPctOfVested, plan.MaxLoanAbsolute)
	if effectiveMax < plan.MinLoanAmount {
		reasons = append(reasons, fmt.Sprintf(
			"your maximum borrowable amount of $%.2f is below the plan minimum of $%.2f",
			effectiveMax, plan.MinLoanAmount))
	}

	return &EligibilityResult{
		Eligible:      len(reasons) == 0,
		Reasons:       reasons,
		MinLoanAmount: roundCents(plan.MinLoanAmount),
		MaxLoanAmount: roundCents(effectiveMax),
	}
}
