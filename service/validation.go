package service

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"planportal/models"
)

// StageValidation is the outcome of validating one workflow stage. Errors are
// user-facing strings; all applicable errors are collected, not just the
// first. Validation never has side effects and is safe to run on every
// transition check.
type StageValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func stageResult(errors []string) StageValidation {
	return StageValidation{Valid: len(errors) == 0, Errors: errors}
}

var (
	routingNumberPattern = regexp.MustCompile(`^\d{9}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{4,17}$`)
)

const dateLayout = "2006-01-02"

// ValidateBasics checks the amount/term/date/cadence selections against the
// plan policy
func ValidateBasics(basics *models.LoanBasics, plan *models.PlanConfig, now time.Time) StageValidation {
	if basics == nil {
		return stageResult([]string{"loan details have not been entered"})
	}

	var errors []string
	if basics.Amount < plan.MinLoanAmount || basics.Amount > plan.MaxLoanAbsolute {
		errors = append(errors, fmt.Sprintf("loan amount must be between $%.2f and $%.2f",
			plan.MinLoanAmount, plan.MaxLoanAbsolute))
	}
	if basics.TermYears < plan.TermYearsMin || basics.TermYears > plan.TermYearsMax {
		errors = append(errors, fmt.Sprintf("loan term must be between %d and %d years",
			plan.TermYearsMin, plan.TermYearsMax))
	}

	if basics.FirstPaymentDate == "" {
		errors = append(errors, "first payment date is required")
	} else if firstPayment, err := time.Parse(dateLayout, basics.FirstPaymentDate); err != nil {
		errors = append(errors, "first payment date is not a valid date")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if firstPayment.Before(today) {
			errors = append(errors, "first payment date cannot be in the past")
		}
	}

	if !plan.AllowsCadence(basics.PaymentCadence) {
		errors = append(errors, fmt.Sprintf("payment frequency %q is not offered by this plan", basics.PaymentCadence))
	}
	return stageResult(errors)
}

// ValidatePaymentSetup checks the repayment account details
func ValidatePaymentSetup(setup *models.PaymentSetup) StageValidation {
	if setup == nil {
		return stageResult([]string{"repayment account has not been entered"})
	}

	var errors []string
	if setup.Method != models.PaymentMethodACHDebit {
		errors = append(errors, "direct debit is the only supported repayment method")
	}
	if !routingNumberPattern.MatchString(setup.RoutingNumber) {
		errors = append(errors, "routing number must be exactly 9 digits")
	}
	if !accountNumberPattern.MatchString(setup.AccountNumber) {
		errors = append(errors, "account number must be 4 to 17 digits")
	}
	if setup.AccountType != models.AccountTypeChecking && setup.AccountType != models.AccountTypeSavings {
		errors = append(errors, "account type must be checking or savings")
	}
	return stageResult(errors)
}

// ValidateAllocation checks the funding split against the loan amount. The
// total must match the amount to within one cent and no line may be negative.
func ValidateAllocation(allocation *models.FundingAllocation, loanAmount float64) StageValidation {
	if allocation == nil {
		return stageResult([]string{"funding allocation has not been set"})
	}

	var errors []string
	if math.Abs(allocation.TotalAllocated-loanAmount) > 0.01 {
		errors = append(errors, fmt.Sprintf("allocated total $%.2f does not match the loan amount $%.2f",
			allocation.TotalAllocated, loanAmount))
	}
	for _, line := range allocation.Lines {
		if line.Amount < 0 {
			errors = append(errors, fmt.Sprintf("allocation for %s cannot be negative", line.SourceName))
		}
	}
	return stageResult(errors)
}

// documentRule adds a required document type when its condition applies.
// Requirements are an explicit rule list so new document types can be added
// without touching the state machine.
type documentRule struct {
	docType string
	applies func(basics *models.LoanBasics, plan *models.PlanConfig, participant *models.ParticipantContext) bool
}

var documentRules = []documentRule{
	{
		// The signed loan agreement is always required.
		docType: models.DocTypeLoanAgreement,
		applies: func(*models.LoanBasics, *models.PlanConfig, *models.ParticipantContext) bool {
			return true
		},
	},
	{
		docType: models.DocTypePurchaseAgreement,
		applies: func(basics *models.LoanBasics, _ *models.PlanConfig, _ *models.ParticipantContext) bool {
			return basics != nil && basics.Purpose == "home_purchase"
		},
	},
	{
		docType: models.DocTypeEnrollmentProof,
		applies: func(basics *models.LoanBasics, _ *models.PlanConfig, _ *models.ParticipantContext) bool {
			return basics != nil && basics.Purpose == "education"
		},
	},
	{
		docType: models.DocTypeHardshipEvidence,
		applies: func(basics *models.LoanBasics, _ *models.PlanConfig, _ *models.ParticipantContext) bool {
			return basics != nil && basics.Purpose == "hardship"
		},
	},
	{
		docType: models.DocTypeSpousalConsent,
		applies: func(_ *models.LoanBasics, plan *models.PlanConfig, participant *models.ParticipantContext) bool {
			return plan.RequiresSpousalConsent && participant != nil && participant.IsMarried
		},
	},
}

// RequiredDocuments returns the document types the compliance stage requires
// for the current draft
func RequiredDocuments(basics *models.LoanBasics, plan *models.PlanConfig, participant *models.ParticipantContext) []string {
	var required []string
	for _, rule := range documentRules {
		if rule.applies(basics, plan, participant) {
			required = append(required, rule.docType)
		}
	}
	return required
}

// ValidateCompliance checks that every required document has been uploaded
// and both acknowledgment flags are set
func ValidateCompliance(record *models.ComplianceRecord, basics *models.LoanBasics, plan *models.PlanConfig, participant *models.ParticipantContext) StageValidation {
	if record == nil {
		return stageResult([]string{"required documents have not been provided"})
	}

	var errors []string
	for _, docType := range RequiredDocuments(basics, plan, participant) {
		if !record.HasDocument(docType) {
			errors = append(errors, fmt.Sprintf("required document %q has not been uploaded", docType))
		}
	}
	if !record.Acknowledged(models.AckTerms) {
		errors = append(errors, "the loan terms must be acknowledged")
	}
	if !record.Acknowledged(models.AckDisclosure) {
		errors = append(errors, "the fee disclosure must be acknowledged")
	}
	return stageResult(errors)
}

// ValidateReview checks that every prior stage was completed at least once
func ValidateReview(app *models.LoanApplication) StageValidation {
	var errors []string
	if app.Basics == nil {
		errors = append(errors, "loan details are incomplete")
	}
	if app.PaymentSetup == nil {
		errors = append(errors, "repayment account is incomplete")
	}
	if app.Allocation == nil {
		errors = append(errors, "funding allocation is incomplete")
	}
	if app.Compliance == nil {
		errors = append(errors, "documents and acknowledgments are incomplete")
	}
	return stageResult(errors)
}

// ValidateStage runs the validator for the given stage against the draft
func ValidateStage(state models.ApplicationState, app *models.LoanApplication, plan *models.PlanConfig, participant *models.ParticipantContext, now time.Time) StageValidation {
	switch state {
	case models.StateBasics:
		return ValidateBasics(app.Basics, plan, now)
	case models.StatePayment:
		return ValidatePaymentSetup(app.PaymentSetup)
	case models.StateAllocation:
		var amount float64
		if app.Basics != nil {
			amount = app.Basics.Amount
		}
		return ValidateAllocation(app.Allocation, amount)
	case models.StateCompliance:
		return ValidateCompliance(app.Compliance, app.Basics, plan, participant)
	case models.StateReview:
		return ValidateReview(app)
	}
	return stageResult([]string{fmt.Sprintf("stage %q cannot be validated", state)})
}
