package service

import (
	"testing"

	"planportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *models.PlanConfig {
	return &models.PlanConfig{
		MaxLoanAbsolute:    50000,
		MaxLoanPctOfVested: 0.5,
		MinLoanAmount:      1000,
		TermYearsMin:       1,
		TermYearsMax:       5,
		DefaultAnnualRate:  0.085,
		OriginationFeePct:  0.01,
		AllowedPaymentCadences: []models.PaymentCadence{
			models.CadenceMonthly,
			models.CadenceBiweekly,
			models.CadenceSemimonthly,
		},
		RequiresSpousalConsent: true,
	}
}

func TestEvaluateEligibility(t *testing.T) {
	plan := testPlan()

	t.Run("eligible participant", func(t *testing.T) {
		participant := &models.ParticipantContext{
			ParticipantID: 1001,
			VestedBalance: 85000,
			IsEnrolled:    true,
		}

		result := EvaluateEligibility(participant, plan)
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Reasons)
		assert.Equal(t, 1000.00, result.MinLoanAmount)
		// min(85000*0.5, 50000)
		assert.Equal(t, 42500.00, result.MaxLoanAmount)
	})

	t.Run("absolute cap applies", func(t *testing.T) {
		participant := &models.ParticipantContext{
			ParticipantID: 1001,
			VestedBalance: 200000,
			IsEnrolled:    true,
		}

		result := EvaluateEligibility(participant, plan)
		assert.True(t, result.Eligible)
		assert.Equal(t, 50000.00, result.MaxLoanAmount)
	})

	t.Run("small balance pushes the maximum below the minimum", func(t *testing.T) {
		participant := &models.ParticipantContext{
			ParticipantID: 1001,
			VestedBalance: 1500,
			IsEnrolled:    true,
		}

		result := EvaluateEligibility(participant, plan)
		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "$750.00")
		assert.Equal(t, 750.00, result.MaxLoanAmount)
	})

	t.Run("maximum exactly at the minimum is eligible", func(t *testing.T) {
		participant := &models.ParticipantContext{
			ParticipantID: 1001,
			VestedBalance: 2000,
			IsEnrolled:    true,
		}

		result := EvaluateEligibility(participant, plan)
		assert.True(t, result.Eligible)
		assert.Equal(t, 1000.00, result.MaxLoanAmount)
	})

	t.Run("all failing rules are reported together", func(t *testing.T) {
		participant := &models.ParticipantContext{
			ParticipantID: 1001,
			VestedBalance: 0,
			IsEnrolled:    false,
		}

		result := EvaluateEligibility(participant, plan)
		assert.False(t, result.Eligible)
		assert.Len(t, result.Reasons, 3)
	})
}
