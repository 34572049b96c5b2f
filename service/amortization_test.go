package service

import (
	"testing"
	"time"

	"planportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_MonthlyWithInterest(t *testing.T) {
	firstPayment := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	result := Calculate(models.CalculationInput{
		Amount:            10000,
		AnnualRate:        0.085,
		TermYears:         3,
		Cadence:           models.CadenceMonthly,
		OriginationFeePct: 0.01,
		FirstPaymentDate:  firstPayment,
	})

	assert.Equal(t, 36, result.NumberOfPayments)
	assert.InDelta(t, 315.68, result.PaymentPerPeriod, 0.01)
	assert.Equal(t, 9900.00, result.NetDisbursement)

	require.Len(t, result.Schedule, 36)
	assert.Equal(t, 0.0, result.Schedule[len(result.Schedule)-1].Balance)

	// Principal portions grow while interest portions shrink
	first := result.Schedule[0]
	last := result.Schedule[len(result.Schedule)-1]
	assert.Greater(t, last.Principal, first.Principal)
	assert.Less(t, last.Interest, first.Interest)

	// Totals come from the schedule itself
	sum := 0.0
	for _, row := range result.Schedule {
		sum = roundCents(sum + row.Payment)
	}
	assert.Equal(t, sum, result.TotalRepayment)
	assert.Equal(t, roundCents(result.TotalRepayment-10000), result.TotalInterest)

	// 36 monthly payments pay off 36 months after the first payment date
	assert.Equal(t, firstPayment.AddDate(0, 36, 0), result.PayoffDate)
}

func TestCalculate_ZeroRate(t *testing.T) {
	result := Calculate(models.CalculationInput{
		Amount:           5000,
		AnnualRate:       0,
		TermYears:        1,
		Cadence:          models.CadenceMonthly,
		FirstPaymentDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, 416.67, result.PaymentPerPeriod)
	require.Len(t, result.Schedule, 12)

	// The final row absorbs the rounding so the total is exact
	assert.Equal(t, 416.63, result.Schedule[11].Principal)
	assert.Equal(t, 0.0, result.Schedule[11].Balance)
	assert.Equal(t, 5000.00, result.TotalRepayment)
	assert.Equal(t, 0.0, result.TotalInterest)

	for _, row := range result.Schedule {
		assert.Equal(t, 0.0, row.Interest)
	}
}

func TestCalculate_Cadences(t *testing.T) {
	firstPayment := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		cadence          models.PaymentCadence
		termYears        int
		expectedPayments int
		expectedMonths   int
	}{
		{"biweekly", models.CadenceBiweekly, 2, 52, 24},
		{"semimonthly", models.CadenceSemimonthly, 2, 48, 24},
		{"unknown falls back to monthly", models.PaymentCadence("weekly"), 2, 24, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(models.CalculationInput{
				Amount:           8000,
				AnnualRate:       0.06,
				TermYears:        tt.termYears,
				Cadence:          tt.cadence,
				FirstPaymentDate: firstPayment,
			})

			assert.Equal(t, tt.expectedPayments, result.NumberOfPayments)
			assert.Equal(t, firstPayment.AddDate(0, tt.expectedMonths, 0), result.PayoffDate)
			require.NotEmpty(t, result.Schedule)
			assert.Equal(t, 0.0, result.Schedule[len(result.Schedule)-1].Balance)
		})
	}
}

func TestCalculate_DegenerateInputs(t *testing.T) {
	t.Run("zero amount", func(t *testing.T) {
		result := Calculate(models.CalculationInput{Amount: 0, TermYears: 3, Cadence: models.CadenceMonthly})
		assert.Equal(t, 0.0, result.PaymentPerPeriod)
		assert.Equal(t, 0, result.NumberOfPayments)
		assert.Empty(t, result.Schedule)
	})

	t.Run("negative amount", func(t *testing.T) {
		result := Calculate(models.CalculationInput{Amount: -100, TermYears: 3, Cadence: models.CadenceMonthly})
		assert.Equal(t, 0.0, result.TotalRepayment)
		assert.Empty(t, result.Schedule)
	})

	t.Run("zero term", func(t *testing.T) {
		result := Calculate(models.CalculationInput{Amount: 1000, TermYears: 0, Cadence: models.CadenceMonthly})
		assert.Equal(t, 0, result.NumberOfPayments)
		assert.Empty(t, result.Schedule)
	})
}

func TestCalculate_BalanceNeverNegative(t *testing.T) {
	result := Calculate(models.CalculationInput{
		Amount:           1234.56,
		AnnualRate:       0.085,
		TermYears:        5,
		Cadence:          models.CadenceBiweekly,
		FirstPaymentDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})

	for _, row := range result.Schedule {
		assert.GreaterOrEqual(t, row.Balance, 0.0)
		assert.Equal(t, roundCents(row.Interest+row.Principal), row.Payment)
	}
	assert.Equal(t, 0.0, result.Schedule[len(result.Schedule)-1].Balance)
}
