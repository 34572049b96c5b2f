package handlers

import (
	"strconv"

	"planportal/service"

	"github.com/gofiber/fiber/v2"
)

// GetEligibility checks whether the participant may borrow and the effective
// borrowable range
func GetEligibility(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		participantID, err := strconv.ParseInt(c.Params("participantId"), 10, 64)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid participant id", nil)
		}

		participant, err := h.Participants.GetByID(c.Context(), participantID)
		if err != nil {
			h.L.Error("Failed to load participant: ", err)
			return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "error loading participant", nil)
		}
		if participant == nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "participant not found", nil)
		}

		result := service.EvaluateEligibility(participant, h.Plan)
		return FiberJsonResponse(c, fiber.StatusOK, "success", "eligibility evaluated", result)
	}
}
