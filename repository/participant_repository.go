package repository

import (
	"context"
	"fmt"

	"planportal/database"
	"planportal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over a pool or a transaction
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ParticipantRepository implements the service.ParticipantRepository interface
type ParticipantRepository struct {
	q queryable
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *database.DB) *ParticipantRepository {
	return &ParticipantRepository{q: db.Pool}
}

// GetByID retrieves a participant's account snapshot
func (r *ParticipantRepository) GetByID(ctx context.Context, participantID int64) (*models.ParticipantContext, error) {
	query := `
		SELECT participant_id, vested_balance, outstanding_loan_balance,
		       is_enrolled, is_married, created_at, updated_at
		FROM participants
		WHERE participant_id = $1
	`

	var participant models.ParticipantContext
	err := r.q.QueryRow(ctx, query, participantID).Scan(
		&participant.ParticipantID,
		&participant.VestedBalance,
		&participant.OutstandingLoanBalance,
		&participant.IsEnrolled,
		&participant.IsMarried,
		&participant.CreatedAt,
		&participant.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant %d: %w", participantID, err)
	}

	return &participant, nil
}

// Create inserts a participant record
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.ParticipantContext) error {
	query := `
		INSERT INTO participants (participant_id, vested_balance, outstanding_loan_balance, is_enrolled, is_married)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		participant.ParticipantID,
		participant.VestedBalance,
		participant.OutstandingLoanBalance,
		participant.IsEnrolled,
		participant.IsMarried,
	).Scan(&participant.CreatedAt, &participant.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create participant %d: %w", participant.ParticipantID, err)
	}

	return nil
}
