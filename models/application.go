package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationState represents the stage of a loan application
type ApplicationState string

const (
	// StateIneligible is a terminal state reached before BASICS when the
	// eligibility check fails. The only way out is leaving the flow.
	StateIneligible ApplicationState = "ineligible"

	StateBasics     ApplicationState = "basics"
	StatePayment    ApplicationState = "payment"
	StateAllocation ApplicationState = "allocation"
	StateCompliance ApplicationState = "compliance"
	StateReview     ApplicationState = "review"
	StateConfirmed  ApplicationState = "confirmed"
)

// StageOrder lists the editable stages in forward order
var StageOrder = []ApplicationState{
	StateBasics,
	StatePayment,
	StateAllocation,
	StateCompliance,
	StateReview,
}

// Next returns the state a forward transition leads to
func (s ApplicationState) Next() (ApplicationState, bool) {
	switch s {
	case StateBasics:
		return StatePayment, true
	case StatePayment:
		return StateAllocation, true
	case StateAllocation:
		return StateCompliance, true
	case StateCompliance:
		return StateReview, true
	case StateReview:
		return StateConfirmed, true
	}
	return s, false
}

// Prev returns the state a backward transition leads to. Backward navigation
// is never gated.
func (s ApplicationState) Prev() (ApplicationState, bool) {
	switch s {
	case StatePayment:
		return StateBasics, true
	case StateAllocation:
		return StatePayment, true
	case StateCompliance:
		return StateAllocation, true
	case StateReview:
		return StateCompliance, true
	}
	return s, false
}

// IsTerminal checks whether the application can still be modified
func (s ApplicationState) IsTerminal() bool {
	return s == StateConfirmed || s == StateIneligible
}

// LoanBasics holds the amount/term/date/cadence selections of the first stage.
// FirstPaymentDate is kept as entered (YYYY-MM-DD) and parsed by validation.
type LoanBasics struct {
	Amount           float64        `json:"amount"`
	TermYears        int            `json:"term_years"`
	FirstPaymentDate string         `json:"first_payment_date"`
	PaymentCadence   PaymentCadence `json:"payment_cadence"`
	Purpose          string         `json:"purpose"`
}

// Payment method and account type values accepted by the payment stage
const (
	PaymentMethodACHDebit = "ach_debit"

	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
)

// PaymentSetup holds the repayment account details
type PaymentSetup struct {
	Method        string `json:"method"`
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
}

// LoanApplication is the accumulating draft record for one origination
// attempt. Sub-records stay nil until their stage has been touched. The draft
// is single-owner: one in-flight application per participant.
type LoanApplication struct {
	ID                uuid.UUID         `json:"id"`
	ParticipantID     int64             `json:"participant_id"`
	State             ApplicationState  `json:"state"`
	IneligibleReasons []string          `json:"ineligible_reasons,omitempty"`
	Basics            *LoanBasics       `json:"basics,omitempty"`
	PaymentSetup      *PaymentSetup     `json:"payment_setup,omitempty"`
	Allocation        *FundingAllocation `json:"allocation,omitempty"`
	Compliance        *ComplianceRecord `json:"compliance,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	SubmittedAt       *time.Time        `json:"submitted_at,omitempty"`
}

// IsSubmitted checks whether the application has been confirmed
func (a *LoanApplication) IsSubmitted() bool {
	return a.State == StateConfirmed
}

// IsEditable checks whether stage patches may still be applied
func (a *LoanApplication) IsEditable() bool {
	return !a.State.IsTerminal()
}

// LoanSubmission is the finalized payload recorded when an application is
// confirmed, handed off to the transaction-recording collaborator.
type LoanSubmission struct {
	ID               uuid.UUID      `db:"id"`
	ApplicationID    uuid.UUID      `db:"application_id"`
	ParticipantID    int64          `db:"participant_id"`
	Amount           float64        `db:"amount"`
	TermYears        int            `db:"term_years"`
	PaymentCadence   PaymentCadence `db:"payment_cadence"`
	Purpose          string         `db:"purpose"`
	PaymentPerPeriod float64        `db:"payment_per_period"`
	TotalRepayment   float64        `db:"total_repayment"`
	TotalInterest    float64        `db:"total_interest"`
	NetDisbursement  float64        `db:"net_disbursement"`
	PayoffDate       time.Time      `db:"payoff_date"`
	SubmittedAt      time.Time      `db:"submitted_at"`
}
