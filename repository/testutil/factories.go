package testutil

import (
	"time"

	"planportal/models"

	"github.com/google/uuid"
)

// CreateTestParticipant builds an enrolled participant with a healthy vested
// balance
func CreateTestParticipant(participantID int64) *models.ParticipantContext {
	return &models.ParticipantContext{
		ParticipantID: participantID,
		VestedBalance: 85000,
		IsEnrolled:    true,
		IsMarried:     true,
	}
}

// CreateTestParticipantWithBalance builds a participant with a specific vested
// balance
func CreateTestParticipantWithBalance(participantID int64, vestedBalance float64) *models.ParticipantContext {
	participant := CreateTestParticipant(participantID)
	participant.VestedBalance = vestedBalance
	return participant
}

// CreateTestFundingSources builds the standard three-source holding set
func CreateTestFundingSources() []models.FundingSource {
	return []models.FundingSource{
		{ID: "src-pretax", Name: "Pre-Tax Contributions"},
		{ID: "src-roth", Name: "Roth Contributions"},
		{ID: "src-match", Name: "Employer Match"},
	}
}

// CreateTestSubmission builds a finalized submission for a participant
func CreateTestSubmission(participantID int64, submittedAt time.Time) *models.LoanSubmission {
	return &models.LoanSubmission{
		ID:               uuid.New(),
		ApplicationID:    uuid.New(),
		ParticipantID:    participantID,
		Amount:           10000,
		TermYears:        3,
		PaymentCadence:   models.CadenceMonthly,
		Purpose:          "general",
		PaymentPerPeriod: 315.68,
		TotalRepayment:   11364.39,
		TotalInterest:    1364.39,
		NetDisbursement:  9900,
		PayoffDate:       submittedAt.AddDate(3, 1, 0),
		SubmittedAt:      submittedAt,
	}
}
