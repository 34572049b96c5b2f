package models

// PaymentCadence represents how often loan payments are drafted
type PaymentCadence string

const (
	CadenceMonthly     PaymentCadence = "monthly"
	CadenceBiweekly    PaymentCadence = "biweekly"
	CadenceSemimonthly PaymentCadence = "semimonthly"
)

// PaymentsPerYear returns the number of payments drafted per year for the
// cadence, or 0 for an unknown cadence
func (c PaymentCadence) PaymentsPerYear() int {
	switch c {
	case CadenceMonthly:
		return 12
	case CadenceBiweekly:
		return 26
	case CadenceSemimonthly:
		return 24
	}
	return 0
}

// PlanConfig holds the plan-level loan policy. It is loaded once at startup
// and never mutated.
type PlanConfig struct {
	MaxLoanAbsolute        float64
	MaxLoanPctOfVested     float64
	MinLoanAmount          float64
	TermYearsMin           int
	TermYearsMax           int
	DefaultAnnualRate      float64
	OriginationFeePct      float64
	AllowedPaymentCadences []PaymentCadence
	RequiresSpousalConsent bool
}

// AllowsCadence checks whether the cadence is permitted by the plan
func (p *PlanConfig) AllowsCadence(c PaymentCadence) bool {
	for _, allowed := range p.AllowedPaymentCadences {
		if allowed == c {
			return true
		}
	}
	return false
}
