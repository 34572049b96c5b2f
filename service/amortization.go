package service

import (
	"math"

	"planportal/models"
)

// Calculate produces the full repayment picture for a loan request: the
// per-period payment, the amortization schedule, totals, payoff date and net
// disbursement after the origination fee.
//
// The function is total: it never returns an error. A non-positive amount or
// term yields an all-zero result with an empty schedule. Policy bounds
// (amount/term/cadence within the plan) are the validator's concern, not the
// calculator's. An unrecognized cadence amortizes as monthly.
func Calculate(in models.CalculationInput) *models.CalculationResult {
	if in.Amount <= 0 {
		return &models.CalculationResult{Schedule: []models.ScheduleRow{}}
	}

	paymentsPerYear := in.Cadence.PaymentsPerYear()
	if paymentsPerYear == 0 {
		paymentsPerYear = models.CadenceMonthly.PaymentsPerYear()
	}
	numberOfPayments := in.TermYears * paymentsPerYear
	if numberOfPayments <= 0 {
		return &models.CalculationResult{Schedule: []models.ScheduleRow{}}
	}

	ratePerPeriod := in.AnnualRate / float64(paymentsPerYear)

	var payment float64
	if ratePerPeriod == 0 {
		payment = roundCents(in.Amount / float64(numberOfPayments))
	} else {
		growth := math.Pow(1+ratePerPeriod, float64(numberOfPayments))
		payment = roundCents(in.Amount * ratePerPeriod * growth / (growth - 1))
	}

	// Build the schedule iteratively, rounding every row to the cent. The
	// final payment absorbs the accumulated rounding so the ending balance is
	// exactly zero.
	schedule := make([]models.ScheduleRow, 0, numberOfPayments)
	balance := roundCents(in.Amount)
	totalRepayment := 0.0
	for i := 1; i <= numberOfPayments; i++ {
		interest := roundCents(balance * ratePerPeriod)
		var principal float64
		if i == numberOfPayments {
			principal = balance
		} else {
			principal = roundCents(math.Min(payment-interest, balance))
		}
		balance = roundCents(math.Max(0, balance-principal))

		rowPayment := roundCents(interest + principal)
		totalRepayment = roundCents(totalRepayment + rowPayment)
		schedule = append(schedule, models.ScheduleRow{
			Number:    i,
			Payment:   rowPayment,
			Interest:  interest,
			Principal: principal,
			Balance:   balance,
		})

		if balance == 0 {
			break
		}
	}

	fee := roundCents(in.Amount * in.OriginationFeePct)

	// Calendar-month approximation of the payoff horizon, kept for parity
	// with the portal's published figures rather than walking each payment
	// date exactly.
	monthsToPayoff := int(math.Ceil(float64(numberOfPayments) / (float64(paymentsPerYear) / 12.0)))

	return &models.CalculationResult{
		PaymentPerPeriod: payment,
		NumberOfPayments: numberOfPayments,
		TotalRepayment:   totalRepayment,
		TotalInterest:    roundCents(totalRepayment - in.Amount),
		NetDisbursement:  roundCents(in.Amount - fee),
		PayoffDate:       in.FirstPaymentDate.AddDate(0, monthsToPayoff, 0),
		Schedule:         schedule,
	}
}
