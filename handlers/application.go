package handlers

import (
	"strconv"

	"planportal/models"
	"planportal/service"

	"github.com/gofiber/fiber/v2"
)

func participantParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("participantId"), 10, 64)
}

// StartApplication opens a new application draft for the participant. An
// ineligible participant gets the accumulated reasons back instead of a
// workable draft.
func StartApplication(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		app, eligibility, err := h.Origination.Start(c.Context(), participantID)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}

		return FiberJsonResponse(c, fiber.StatusCreated, "success", "application started", fiber.Map{
			"application": app,
			"eligibility": eligibility,
		})
	}
}

// GetApplication returns the in-flight draft with per-stage validity for the
// step indicator
func GetApplication(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		app, err := h.Origination.Get(c.Context(), participantID)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", err.Error(), nil)
		}

		stages, err := h.Origination.StageStatus(c.Context(), participantID)
		if err != nil {
			h.L.Error("Failed to compute stage status: ", err)
			return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "error computing stage status", nil)
		}

		return FiberJsonResponse(c, fiber.StatusOK, "success", "application", fiber.Map{
			"application": app,
			"stages":      stages,
		})
	}
}

// PatchBasics merges a partial update into the loan basics stage
func PatchBasics(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		var patch service.BasicsPatch
		if err := c.BodyParser(&patch); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		app, err := h.Origination.PatchBasics(c.Context(), participantID, patch)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "loan details updated", app)
	}
}

// PatchPaymentSetup merges a partial update into the repayment account stage
func PatchPaymentSetup(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		var patch service.PaymentSetupPatch
		if err := c.BodyParser(&patch); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		app, err := h.Origination.PatchPaymentSetup(c.Context(), participantID, patch)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "repayment account updated", app)
	}
}

// AllocationModeRequest selects pro-rata or custom funding allocation
type AllocationModeRequest struct {
	Mode models.AllocationMode `json:"mode"`
}

// SetAllocationMode seeds or re-seeds the funding allocation
func SetAllocationMode(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		var req AllocationModeRequest
		if err := c.BodyParser(&req); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		app, err := h.Origination.SetAllocationMode(c.Context(), participantID, req.Mode)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "allocation updated", app)
	}
}

// AllocationLineRequest edits one funding source's share
type AllocationLineRequest struct {
	SourceID string  `json:"source_id"`
	Amount   float64 `json:"amount"`
}

// PatchAllocationLine edits one line of the funding split
func PatchAllocationLine(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		var req AllocationLineRequest
		if err := c.BodyParser(&req); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		app, err := h.Origination.PatchAllocationLine(c.Context(), participantID, req.SourceID, req.Amount)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "allocation updated", app)
	}
}

// DocumentRequest carries uploaded-document metadata; file bytes never reach
// this API
type DocumentRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// AddDocument records uploaded-document metadata
func AddDocument(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		var req DocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		app, err := h.Origination.AddDocument(c.Context(), participantID, models.DocumentMeta{
			Type: req.Type,
			Name: req.Name,
			Size: req.Size,
		})
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "document recorded", app)
	}
}

// AcknowledgmentRequest sets one named acknowledgment flag
type AcknowledgmentRequest struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

// SetAcknowledgment sets an acknowledgment flag
func SetAcknowledgment(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		var req AcknowledgmentRequest
		if err := c.BodyParser(&req); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "error parsing request", nil)
		}

		app, err := h.Origination.SetAcknowledgment(c.Context(), participantID, req.Name, req.Value)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "acknowledgment recorded", app)
	}
}

// AdvanceApplication validates the current stage and moves forward when clean
func AdvanceApplication(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		app, validation, err := h.Origination.Advance(c.Context(), participantID)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		if !validation.Valid {
			return FiberJsonResponse(c, fiber.StatusUnprocessableEntity, "error", "the current step has validation errors", fiber.Map{
				"application": app,
				"validation":  validation,
			})
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "application advanced", app)
	}
}

// RetreatApplication moves back one stage; never gated
func RetreatApplication(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		app, err := h.Origination.Retreat(c.Context(), participantID)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusConflict, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "application moved back", app)
	}
}

// AbandonApplication discards the in-flight draft
func AbandonApplication(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		if err := h.Origination.Abandon(c.Context(), participantID); err != nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "application discarded", nil)
	}
}

// GetDraftQuote returns the repayment picture for the draft's current basics
func GetDraftQuote(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := participantParam(c)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		result, err := h.Origination.QuoteForDraft(c.Context(), participantID)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", err.Error(), nil)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "quote computed", result)
	}
}
