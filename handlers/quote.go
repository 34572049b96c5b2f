package handlers

import (
	"time"

	"planportal/models"

	"github.com/gofiber/fiber/v2"
)

// QuoteRequest is the payload for an amortization quote. Rate and fee come
// from the plan policy, not the caller.
type QuoteRequest struct {
	Amount           float64               `json:"amount"`
	TermYears        int                   `json:"term_years"`
	Cadence          models.PaymentCadence `json:"cadence"`
	FirstPaymentDate string                `json:"first_payment_date"`
}

// CreateQuote computes the repayment picture for a prospective loan
func CreateQuote(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		var req QuoteRequest
		if err := c.BodyParser(&req); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		firstPayment, _ := time.Parse("2006-01-02", req.FirstPaymentDate)

		result, err := h.Quotes.Quote(c.Context(), models.CalculationInput{
			Amount:            req.Amount,
			AnnualRate:        h.Plan.DefaultAnnualRate,
			TermYears:         req.TermYears,
			Cadence:           req.Cadence,
			OriginationFeePct: h.Plan.OriginationFeePct,
			FirstPaymentDate:  firstPayment,
		})
		if err != nil {
			h.L.Error("Failed to compute quote: ", err)
			return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "error computing quote", nil)
		}

		return FiberJsonResponse(c, fiber.StatusOK, "success", "quote computed", result)
	}
}
