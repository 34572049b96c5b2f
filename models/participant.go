package models

import "time"

// ParticipantContext is the account snapshot the recordkeeping system supplies
// for a participant. Read-only to the loan workflow.
type ParticipantContext struct {
	ParticipantID          int64     `db:"participant_id"`
	VestedBalance          float64   `db:"vested_balance"`
	OutstandingLoanBalance float64   `db:"outstanding_loan_balance"`
	IsEnrolled             bool      `db:"is_enrolled"`
	IsMarried              bool      `db:"is_married"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// FundingSource is a holding a loan can be drawn against
type FundingSource struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}
