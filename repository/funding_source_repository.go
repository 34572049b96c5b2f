package repository

import (
	"context"
	"fmt"

	"planportal/database"
	"planportal/models"
)

// FundingSourceRepository implements the service.FundingSourceRepository interface
type FundingSourceRepository struct {
	q queryable
}

// NewFundingSourceRepository creates a new funding source repository
func NewFundingSourceRepository(db *database.DB) *FundingSourceRepository {
	return &FundingSourceRepository{q: db.Pool}
}

// GetByParticipant returns the participant's holdings in display order
func (r *FundingSourceRepository) GetByParticipant(ctx context.Context, participantID int64) ([]models.FundingSource, error) {
	query := `
		SELECT id, name
		FROM funding_sources
		WHERE participant_id = $1
		ORDER BY position, id
	`

	rows, err := r.q.Query(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get funding sources for participant %d: %w", participantID, err)
	}
	defer rows.Close()

	var sources []models.FundingSource
	for rows.Next() {
		var source models.FundingSource
		if err := rows.Scan(&source.ID, &source.Name); err != nil {
			return nil, fmt.Errorf("failed to scan funding source: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate funding sources: %w", err)
	}

	return sources, nil
}

// Create inserts a funding source for a participant
func (r *FundingSourceRepository) Create(ctx context.Context, participantID int64, source models.FundingSource, position int) error {
	query := `
		INSERT INTO funding_sources (id, participant_id, name, position)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.q.Exec(ctx, query, source.ID, participantID, source.Name, position); err != nil {
		return fmt.Errorf("failed to create funding source %q: %w", source.ID, err)
	}

	return nil
}
