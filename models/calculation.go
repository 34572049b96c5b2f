package models

import "time"

// CalculationInput is the full input of an amortization calculation. Two
// quotes with the same input are interchangeable.
type CalculationInput struct {
	Amount            float64        `json:"amount"`
	AnnualRate        float64        `json:"annual_rate"`
	TermYears         int            `json:"term_years"`
	Cadence           PaymentCadence `json:"cadence"`
	OriginationFeePct float64        `json:"origination_fee_pct"`
	FirstPaymentDate  time.Time      `json:"first_payment_date"`
}

// ScheduleRow is one payment in the amortization schedule
type ScheduleRow struct {
	Number    int     `json:"number"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// CalculationResult is derived from a CalculationInput and never persisted.
// It is recomputed whenever the underlying loan basics change.
type CalculationResult struct {
	PaymentPerPeriod float64       `json:"payment_per_period"`
	NumberOfPayments int           `json:"number_of_payments"`
	TotalRepayment   float64       `json:"total_repayment"`
	TotalInterest    float64       `json:"total_interest"`
	NetDisbursement  float64       `json:"net_disbursement"`
	PayoffDate       time.Time     `json:"payoff_date"`
	Schedule         []ScheduleRow `json:"schedule"`
}
