package repository

import (
	"context"
	"fmt"

	"planportal/database"
	"planportal/models"
)

// SubmissionRepository implements the service.SubmissionRepository interface
type SubmissionRepository struct {
	q queryable
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *database.DB) *SubmissionRepository {
	return &SubmissionRepository{q: db.Pool}
}

// Create records a finalized submission
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.LoanSubmission) error {
	query := `
		INSERT INTO loan_submissions (
			id, application_id, participant_id, amount, term_years,
			payment_cadence, purpose, payment_per_period, total_repayment,
			total_interest, net_disbursement, payoff_date, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.Exec(ctx, query,
		submission.ID,
		submission.ApplicationID,
		submission.ParticipantID,
		submission.Amount,
		submission.TermYears,
		string(submission.PaymentCadence),
		submission.Purpose,
		submission.PaymentPerPeriod,
		submission.TotalRepayment,
		submission.TotalInterest,
		submission.NetDisbursement,
		submission.PayoffDate,
		submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record submission %s: %w", submission.ID, err)
	}

	return nil
}

// GetByParticipant returns submissions for a participant, newest first
func (r *SubmissionRepository) GetByParticipant(ctx context.Context, participantID int64) ([]*models.LoanSubmission, error) {
	query := `
		SELECT id, application_id, participant_id, amount, term_years,
		       payment_cadence, purpose, payment_per_period, total_repayment,
		       total_interest, net_disbursement, payoff_date, submitted_at
		FROM loan_submissions
		WHERE participant_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := r.q.Query(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions for participant %d: %w", participantID, err)
	}
	defer rows.Close()

	var submissions []*models.LoanSubmission
	for rows.Next() {
		var submission models.LoanSubmission
		var cadence string
		err := rows.Scan(
			&submission.ID,
			&submission.ApplicationID,
			&submission.ParticipantID,
			&submission.Amount,
			&submission.TermYears,
			&cadence,
			&submission.Purpose,
			&submission.PaymentPerPeriod,
			&submission.TotalRepayment,
			&submission.TotalInterest,
			&submission.NetDisbursement,
			&submission.PayoffDate,
			&submission.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submission.PaymentCadence = models.PaymentCadence(cadence)
		submissions = append(submissions, &submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return submissions, nil
}
