package service

import (
	"context"

	"planportal/events"
	"planportal/models"
)

// ParticipantRepository defines the interface for participant context access
type ParticipantRepository interface {
	// GetByID retrieves a participant's account snapshot, or nil if unknown
	GetByID(ctx context.Context, participantID int64) (*models.ParticipantContext, error)
}

// FundingSourceRepository defines the interface for candidate funding sources
type FundingSourceRepository interface {
	// GetByParticipant returns the participant's holdings in display order
	GetByParticipant(ctx context.Context, participantID int64) ([]models.FundingSource, error)
}

// ApplicationStore defines the interface for in-flight application drafts.
// Drafts are single-owner: at most one per participant at a time.
type ApplicationStore interface {
	// Get retrieves the participant's in-flight application, or nil
	Get(ctx context.Context, participantID int64) (*models.LoanApplication, error)

	// Save stores or replaces the participant's in-flight application
	Save(ctx context.Context, app *models.LoanApplication) error

	// Delete discards the participant's in-flight application
	Delete(ctx context.Context, participantID int64) error
}

// SubmissionRepository defines the interface for recording confirmed loans
type SubmissionRepository interface {
	// Create records a finalized submission
	Create(ctx context.Context, submission *models.LoanSubmission) error

	// GetByParticipant returns submissions for a participant, newest first
	GetByParticipant(ctx context.Context, participantID int64) ([]*models.LoanSubmission, error)
}

// CacheRepository defines the interface for the quote cache
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// EventPublisher defines the interface for publishing workflow events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// QuoteService defines the interface for amortization quotes
type QuoteService interface {
	// Quote computes the repayment picture for the given input, serving
	// repeated identical inputs from cache
	Quote(ctx context.Context, input models.CalculationInput) (*models.CalculationResult, error)
}

// BasicsPatch is a partial update to the loan basics stage
type BasicsPatch struct {
	Amount           *float64               `json:"amount"`
	TermYears        *int                   `json:"term_years"`
	FirstPaymentDate *string                `json:"first_payment_date"`
	PaymentCadence   *models.PaymentCadence `json:"payment_cadence"`
	Purpose          *string                `json:"purpose"`
}

// PaymentSetupPatch is a partial update to the repayment account stage
type PaymentSetupPatch struct {
	RoutingNumber *string `json:"routing_number"`
	AccountNumber *string `json:"account_number"`
	AccountType   *string `json:"account_type"`
}

// StageStatus reports one stage's validity for step indicators
type StageStatus struct {
	Stage   models.ApplicationState `json:"stage"`
	Current bool                    `json:"current"`
	Valid   bool                    `json:"valid"`
	Errors  []string                `json:"errors"`
}

// OriginationService defines the interface for the loan origination workflow.
// It is the only mutation surface the portal may use; stage patches merge
// partial updates without validating, and Advance is the only gated
// transition.
type OriginationService interface {
	// Start re-runs the eligibility check and opens a new draft, or returns
	// an ineligible application carrying the accumulated reasons
	Start(ctx context.Context, participantID int64) (*models.LoanApplication, *EligibilityResult, error)

	// Get returns the participant's in-flight application
	Get(ctx context.Context, participantID int64) (*models.LoanApplication, error)

	// PatchBasics merges a partial update into the loan basics. A changed
	// amount renormalizes any existing funding allocation.
	PatchBasics(ctx context.Context, participantID int64, patch BasicsPatch) (*models.LoanApplication, error)

	// PatchPaymentSetup merges a partial update into the repayment account
	PatchPaymentSetup(ctx context.Context, participantID int64, patch PaymentSetupPatch) (*models.LoanApplication, error)

	// SetAllocationMode switches between pro-rata and custom allocation,
	// seeding lines from the participant's funding sources when needed
	SetAllocationMode(ctx context.Context, participantID int64, mode models.AllocationMode) (*models.LoanApplication, error)

	// PatchAllocationLine sets one line's amount and renormalizes the split
	PatchAllocationLine(ctx context.Context, participantID int64, sourceID string, amount float64) (*models.LoanApplication, error)

	// AddDocument records uploaded-document metadata
	AddDocument(ctx context.Context, participantID int64, doc models.DocumentMeta) (*models.LoanApplication, error)

	// SetAcknowledgment sets a named acknowledgment flag
	SetAcknowledgment(ctx context.Context, participantID int64, name string, value bool) (*models.LoanApplication, error)

	// Advance validates the current stage and moves forward when clean.
	// REVIEW -> CONFIRMED records the submission and freezes the draft.
	Advance(ctx context.Context, participantID int64) (*models.LoanApplication, StageValidation, error)

	// Retreat moves back one stage. Backward navigation is never gated and
	// does not reset later stages' data.
	Retreat(ctx context.Context, participantID int64) (*models.LoanApplication, error)

	// Abandon discards the in-flight draft
	Abandon(ctx context.Context, participantID int64) error

	// StageStatus reports every stage's validity for the step indicator
	StageStatus(ctx context.Context, participantID int64) ([]StageStatus, error)

	// QuoteForDraft computes the repayment picture for the draft's current
	// basics under the plan's rate and fee policy
	QuoteForDraft(ctx context.Context, participantID int64) (*models.CalculationResult, error)
}
