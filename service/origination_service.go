package service

import (
	"context"
	"fmt"
	"time"

	"planportal/events"
	"planportal/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type originationService struct {
	plan           *models.PlanConfig
	participants   ParticipantRepository
	fundingSources FundingSourceRepository
	store          ApplicationStore
	submissions    SubmissionRepository
	eventBus       EventPublisher
}

// NewOriginationService creates a new origination workflow service
func NewOriginationService(
	plan *models.PlanConfig,
	participants ParticipantRepository,
	fundingSources FundingSourceRepository,
	store ApplicationStore,
	submissions SubmissionRepository,
	eventBus EventPublisher,
) OriginationService {
	return &originationService{
		plan:           plan,
		participants:   participants,
		fundingSources: fundingSources,
		store:          store,
		submissions:    submissions,
		eventBus:       eventBus,
	}
}

// Start re-runs the eligibility check and opens a new draft
func (s *originationService) Start(ctx context.Context, participantID int64) (*models.LoanApplication, *EligibilityResult, error) {
	existing, err := s.store.Get(ctx, participantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for an existing application: %w", err)
	}
	if existing != nil {
		// Closed drafts are discardable; an open one blocks a second attempt.
		if !existing.State.IsTerminal() {
			return nil, nil, fmt.Errorf("an application is already in progress")
		}
		if err := s.store.Delete(ctx, participantID); err != nil {
			return nil, nil, fmt.Errorf("failed to discard the previous application: %w", err)
		}
	}

	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get participant: %w", err)
	}
	if participant == nil {
		return nil, nil, fmt.Errorf("participant not found")
	}

	eligibility := EvaluateEligibility(participant, s.plan)

	app := &models.LoanApplication{
		ID:            uuid.New(),
		ParticipantID: participantID,
		CreatedAt:     time.Now(),
	}

	if !eligibility.Eligible {
		app.State = models.StateIneligible
		app.IneligibleReasons = eligibility.Reasons
		if err := s.store.Save(ctx, app); err != nil {
			return nil, nil, fmt.Errorf("failed to save application: %w", err)
		}
		s.eventBus.Emit(ctx, events.EligibilityDeclinedEvent{
			ParticipantID: participantID,
			Reasons:       eligibility.Reasons,
		})
		return app, eligibility, nil
	}

	app.State = models.StateBasics
	if err := s.store.Save(ctx, app); err != nil {
		return nil, nil, fmt.Errorf("failed to save application: %w", err)
	}

	log.WithFields(log.Fields{
		"applicationID": app.ID,
		"participantID": participantID,
	}).Info("Loan application started")

	s.eventBus.Emit(ctx, events.ApplicationStartedEvent{
		ApplicationID: app.ID.String(),
		ParticipantID: participantID,
	})

	return app, eligibility, nil
}

// Get returns the participant's in-flight application
func (s *originationService) Get(ctx context.Context, participantID int64) (*models.LoanApplication, error) {
	app, err := s.store.Get(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, fmt.Errorf("no application in progress")
	}
	return app, nil
}

// getEditable loads the draft and rejects patches to closed applications
func (s *originationService) getEditable(ctx context.Context, participantID int64) (*models.LoanApplication, error) {
	app, err := s.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if !app.IsEditable() {
		return nil, fmt.Errorf("the application can no longer be modified")
	}
	return app, nil
}

// PatchBasics merges a partial update into the loan basics. Patches never
// validate; validation runs when the caller asks to advance.
func (s *originationService) PatchBasics(ctx context.Context, participantID int64, patch BasicsPatch) (*models.LoanApplication, error) {
	app, err := s.getEditable(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if app.Basics == nil {
		app.Basics = &models.LoanBasics{}
	}
	previousAmount := app.Basics.Amount

	if patch.Amount != nil {
		app.Basics.Amount = *patch.Amount
	}
	if patch.TermYears != nil {
		app.Basics.TermYears = *patch.TermYears
	}
	if patch.FirstPaymentDate != nil {
		app.Basics.FirstPaymentDate = *patch.FirstPaymentDate
	}
	if patch.PaymentCadence != nil {
		app.Basics.PaymentCadence = *patch.PaymentCadence
	}
	if patch.Purpose != nil {
		app.Basics.Purpose = *patch.Purpose
	}

	// A changed amount would break the allocation total-match invariant, so
	// the existing split is recomputed against the new amount.
	if app.Basics.Amount != previousAmount && app.Allocation != nil {
		s.reallocate(app)
	}

	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

func (s *originationService) reallocate(app *models.LoanApplication) {
	amount := app.Basics.Amount
	if app.Allocation.Mode == models.AllocationModeProRata {
		sources := make([]models.FundingSource, len(app.Allocation.Lines))
		for i, line := range app.Allocation.Lines {
			sources[i] = models.FundingSource{ID: line.SourceID, Name: line.SourceName}
		}
		app.Allocation.Lines = ProRata(amount, sources)
	} else {
		app.Allocation.Lines = Normalize(app.Allocation.Lines, amount)
	}
	app.Allocation.TotalAllocated = AllocationTotal(app.Allocation.Lines)
}

// PatchPaymentSetup merges a partial update into the repayment account
func (s *originationService) PatchPaymentSetup(ctx context.Context, participantID int64, patch PaymentSetupPatch) (*models.LoanApplication, error) {
	app, err := s.getEditable(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if app.PaymentSetup == nil {
		// Direct debit is the only supported method.
		app.PaymentSetup = &models.PaymentSetup{Method: models.PaymentMethodACHDebit}
	}
	if patch.RoutingNumber != nil {
		app.PaymentSetup.RoutingNumber = *patch.RoutingNumber
	}
	if patch.AccountNumber != nil {
		app.PaymentSetup.AccountNumber = *patch.AccountNumber
	}
	if patch.AccountType != nil {
		app.PaymentSetup.AccountType = *patch.AccountType
	}

	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// SetAllocationMode switches between pro-rata and custom allocation
func (s *originationService) SetAllocationMode(ctx context.Context, participantID int64, mode models.AllocationMode) (*models.LoanApplication, error) {
	if mode != models.AllocationModeProRata && mode != models.AllocationModeCustom {
		return nil, fmt.Errorf("unknown allocation mode %q", mode)
	}

	app, err := s.getEditable(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if app.Basics == nil || app.Basics.Amount <= 0 {
		return nil, fmt.Errorf("the loan amount must be set before allocating funding")
	}
	amount := app.Basics.Amount

	var lines []models.AllocationLine
	if mode == models.AllocationModeCustom && app.Allocation != nil && len(app.Allocation.Lines) > 0 {
		lines = Normalize(app.Allocation.Lines, amount)
	} else {
		sources, err := s.fundingSources.GetByParticipant(ctx, participantID)
		if err != nil {
			return nil, fmt.Errorf("failed to get funding sources: %w", err)
		}
		if len(sources) == 0 {
			return nil, fmt.Errorf("no funding sources are available for this participant")
		}
		lines = ProRata(amount, sources)
	}

	app.Allocation = &models.FundingAllocation{
		Mode:           mode,
		Lines:          lines,
		TotalAllocated: AllocationTotal(lines),
	}

	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// PatchAllocationLine sets one line's amount and renormalizes the split. The
// last line always absorbs the remainder, so the total keeps matching the
// loan amount regardless of the edit.
func (s *originationService) PatchAllocationLine(ctx context.Context, participantID int64, sourceID string, amount float64) (*models.LoanApplication, error) {
	app, err := s.getEditable(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if app.Allocation == nil {
		return nil, fmt.Errorf("the funding allocation has not been set up")
	}

	line := app.Allocation.Line(sourceID)
	if line == nil {
		return nil, fmt.Errorf("unknown funding source %q", sourceID)
	}
	line.Amount = amount

	app.Allocation.Mode = models.AllocationModeCustom
	app.Allocation.Lines = Normalize(app.Allocation.Lines, app.Basics.Amount)
	app.Allocation.TotalAllocated = AllocationTotal(app.Allocation.Lines)

	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// AddDocument records uploaded-document metadata. File contents never reach
// this service.
func (s *originationService) AddDocument(ctx context.Context, participantID int64, doc models.DocumentMeta) (*models.LoanApplication, error) {
	app, err := s.getEditable(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if app.Compliance == nil {
		app.Compliance = &models.ComplianceRecord{Acknowledgments: make(map[string]bool)}
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	app.Compliance.Documents = append(app.Compliance.Documents, doc)

	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// SetAcknowledgment sets a named acknowledgment flag
func (s *originationService) SetAcknowledgment(ctx context.Context, participantID int64, name string, value bool) (*models.LoanApplication, error) {
	app, err := s.getEditable(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if app.Compliance == nil {
		app.Compliance = &models.ComplianceRecord{Acknowledgments: make(map[string]bool)}
	}
	app.Compliance.Acknowledgments[name] = value

	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// Advance validates the current stage and moves forward when clean
func (s *originationService) Advance(ctx context.Context, participantID int64) (*models.LoanApplication, StageValidation, error) {
	app, err := s.Get(ctx, participantID)
	if err != nil {
		return nil, StageValidation{}, err
	}
	if app.State == models.StateIneligible {
		return nil, StageValidation{}, fmt.Errorf("the application is not eligible to proceed")
	}
	if app.State == models.StateConfirmed {
		return nil, StageValidation{}, fmt.Errorf("the application has already been submitted")
	}

	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, StageValidation{}, fmt.Errorf("failed to get participant: %w", err)
	}

	validation := ValidateStage(app.State, app, s.plan, participant, time.Now())
	if !validation.Valid {
		return app, validation, nil
	}

	if app.State == models.StateReview {
		if err := s.submit(ctx, app); err != nil {
			return nil, StageValidation{}, err
		}
		return app, validation, nil
	}

	oldState := app.State
	app.State, _ = app.State.Next()
	if err := s.store.Save(ctx, app); err != nil {
		return nil, StageValidation{}, fmt.Errorf("failed to save application: %w", err)
	}

	s.eventBus.Emit(ctx, events.StageChangedEvent{
		ApplicationID: app.ID.String(),
		ParticipantID: participantID,
		OldState:      oldState,
		NewState:      app.State,
	})

	return app, validation, nil
}

// submit records the finalized loan and freezes the draft. This is the one
// transition with an externally visible side effect.
func (s *originationService) submit(ctx context.Context, app *models.LoanApplication) error {
	calc := s.draftCalculation(app)
	now := time.Now()

	submission := &models.LoanSubmission{
		ID:               uuid.New(),
		ApplicationID:    app.ID,
		ParticipantID:    app.ParticipantID,
		Amount:           app.Basics.Amount,
		TermYears:        app.Basics.TermYears,
		PaymentCadence:   app.Basics.PaymentCadence,
		Purpose:          app.Basics.Purpose,
		PaymentPerPeriod: calc.PaymentPerPeriod,
		TotalRepayment:   calc.TotalRepayment,
		TotalInterest:    calc.TotalInterest,
		NetDisbursement:  calc.NetDisbursement,
		PayoffDate:       calc.PayoffDate,
		SubmittedAt:      now,
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	oldState := app.State
	app.State = models.StateConfirmed
	app.SubmittedAt = &now
	if err := s.store.Save(ctx, app); err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}

	log.WithFields(log.Fields{
		"applicationID":   app.ID,
		"submissionID":    submission.ID,
		"participantID":   app.ParticipantID,
		"amount":          submission.Amount,
		"netDisbursement": submission.NetDisbursement,
	}).Info("Loan application submitted")

	s.eventBus.Emit(ctx, events.StageChangedEvent{
		ApplicationID: app.ID.String(),
		ParticipantID: app.ParticipantID,
		OldState:      oldState,
		NewState:      app.State,
	})
	s.eventBus.Emit(ctx, events.ApplicationSubmittedEvent{
		ApplicationID:   app.ID.String(),
		SubmissionID:    submission.ID.String(),
		ParticipantID:   app.ParticipantID,
		Amount:          submission.Amount,
		NetDisbursement: submission.NetDisbursement,
	})

	return nil
}

// Retreat moves back one stage without validating or resetting anything
func (s *originationService) Retreat(ctx context.Context, participantID int64) (*models.LoanApplication, error) {
	app, err := s.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if app.State.IsTerminal() {
		return nil, fmt.Errorf("the application can no longer be navigated")
	}

	prev, ok := app.State.Prev()
	if !ok {
		return nil, fmt.Errorf("the application is already at the first step")
	}

	oldState := app.State
	app.State = prev
	if err := s.store.Save(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	s.eventBus.Emit(ctx, events.StageChangedEvent{
		ApplicationID: app.ID.String(),
		ParticipantID: participantID,
		OldState:      oldState,
		NewState:      app.State,
	})

	return app, nil
}

// Abandon discards the in-flight draft
func (s *originationService) Abandon(ctx context.Context, participantID int64) error {
	app, err := s.Get(ctx, participantID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, participantID); err != nil {
		return fmt.Errorf("failed to discard application: %w", err)
	}

	s.eventBus.Emit(ctx, events.ApplicationAbandonedEvent{
		ApplicationID: app.ID.String(),
		ParticipantID: participantID,
	})

	return nil
}

// StageStatus reports every stage's validity for the step indicator
func (s *originationService) StageStatus(ctx context.Context, participantID int64) ([]StageStatus, error) {
	app, err := s.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}

	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	now := time.Now()
	statuses := make([]StageStatus, 0, len(models.StageOrder))
	for _, stage := range models.StageOrder {
		validation := ValidateStage(stage, app, s.plan, participant, now)
		statuses = append(statuses, StageStatus{
			Stage:   stage,
			Current: app.State == stage,
			Valid:   validation.Valid,
			Errors:  validation.Errors,
		})
	}
	return statuses, nil
}

// QuoteForDraft computes the repayment picture for the draft's current basics
func (s *originationService) QuoteForDraft(ctx context.Context, participantID int64) (*models.CalculationResult, error) {
	app, err := s.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if app.Basics == nil {
		return nil, fmt.Errorf("loan details have not been entered")
	}
	return s.draftCalculation(app), nil
}

// draftCalculation runs the calculator over the draft's basics under the
// plan's rate and fee policy. The result is derived, never stored.
func (s *originationService) draftCalculation(app *models.LoanApplication) *models.CalculationResult {
	firstPayment, _ := time.Parse(dateLayout, app.Basics.FirstPaymentDate)
	return Calculate(models.CalculationInput{
		Amount:            app.Basics.Amount,
		AnnualRate:        s.plan.DefaultAnnualRate,
		TermYears:         app.Basics.TermYears,
		Cadence:           app.Basics.PaymentCadence,
		OriginationFeePct: s.plan.OriginationFeePct,
		FirstPaymentDate:  firstPayment,
	})
}
