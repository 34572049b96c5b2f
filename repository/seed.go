package repository

import (
	"context"
	"fmt"

	"planportal/database"

	"github.com/jackc/pgx/v5"
)

// SeedDemoData loads the placeholder participant and holdings the portal uses
// until real recordkeeping integration lands. Safe to run repeatedly.
func SeedDemoData(ctx context.Context, db *database.DB) error {
	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO participants (participant_id, vested_balance, outstanding_loan_balance, is_enrolled, is_married)
			VALUES (1001, 85000.00, 0, TRUE, TRUE)
			ON CONFLICT (participant_id) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to seed participant: %w", err)
		}

		sources := []struct {
			id, name string
			position int
		}{
			{"src-pretax", "Pre-Tax Contributions", 0},
			{"src-roth", "Roth Contributions", 1},
			{"src-match", "Employer Match", 2},
		}
		for _, src := range sources {
			_, err := tx.Exec(ctx, `
				INSERT INTO funding_sources (id, participant_id, name, position)
				VALUES ($1, 1001, $2, $3)
				ON CONFLICT (id) DO NOTHING
			`, src.id, src.name, src.position)
			if err != nil {
				return fmt.Errorf("failed to seed funding source %q: %w", src.id, err)
			}
		}

		return nil
	})
}
