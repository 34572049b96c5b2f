package handlers

import (
	"planportal/models"
	"planportal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Handler bundles the services the HTTP surface exposes
type Handler struct {
	Plan         *models.PlanConfig
	Participants service.ParticipantRepository
	Origination  service.OriginationService
	Quotes       service.QuoteService
	L            *logrus.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	plan *models.PlanConfig,
	participants service.ParticipantRepository,
	origination service.OriginationService,
	quotes service.QuoteService,
	l *logrus.Logger,
) *Handler {
	return &Handler{
		Plan:         plan,
		Participants: participants,
		Origination:  origination,
		Quotes:       quotes,
		L:            l,
	}
}

// FiberJsonResponse writes the envelope every endpoint responds with
func FiberJsonResponse(c *fiber.Ctx, httpStatus int, status, message string, data any) error {
	return c.Status(httpStatus).JSON(fiber.Map{"status": status, "message": message, "data": data})
}

// HandleHealthCheck reports service liveness
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
