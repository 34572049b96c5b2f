package router

import (
	"planportal/handlers"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the portal-facing API
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", handlers.HandleHealthCheck)

	api := app.Group("/api")
	loans := api.Group("/loans")

	loans.Get("/eligibility/:participantId", handlers.GetEligibility(h))
	loans.Post("/quote", handlers.CreateQuote(h))

	applications := loans.Group("/applications/:participantId")
	applications.Post("/", handlers.StartApplication(h))
	applications.Get("/", handlers.GetApplication(h))
	applications.Delete("/", handlers.AbandonApplication(h))
	applications.Get("/quote", handlers.GetDraftQuote(h))
	applications.Patch("/basics", handlers.PatchBasics(h))
	applications.Patch("/payment", handlers.PatchPaymentSetup(h))
	applications.Put("/allocation/mode", handlers.SetAllocationMode(h))
	applications.Patch("/allocation", handlers.PatchAllocationLine(h))
	applications.Post("/documents", handlers.AddDocument(h))
	applications.Put("/acknowledgments", handlers.SetAcknowledgment(h))
	applications.Post("/advance", handlers.AdvanceApplication(h))
	applications.Post("/retreat", handlers.RetreatApplication(h))
}
