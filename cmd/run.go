package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"planportal/config"
	"planportal/database"
	"planportal/events"
	"planportal/handlers"
	"planportal/repository"
	"planportal/router"
	"planportal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting plan portal...")

	// Load configuration
	cfg := config.Get()
	plan := cfg.PlanConfig()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	registerEventLogging(eventBus)
	log.Println("Event bus initialized successfully")

	// Initialize repositories
	log.Println("Initializing repositories...")
	participantRepo := repository.NewParticipantRepository(db)
	fundingSourceRepo := repository.NewFundingSourceRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	applicationStore := repository.NewMemoryApplicationStore()

	var quoteCache service.CacheRepository
	if cfg.RedisAddr != "" {
		quoteCache = repository.NewRedisCache(cfg.RedisAddr, 10*time.Minute)
	} else {
		quoteCache = repository.NewMemoryCache()
	}
	log.Println("Repositories initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	originationService := service.NewOriginationService(plan, participantRepo, fundingSourceRepo, applicationStore, submissionRepo, eventBus)
	quoteService := service.NewQuoteService(quoteCache)
	log.Println("Services initialized successfully")

	// Initialize HTTP server
	logger := logrus.New()
	handler := handlers.NewHandler(plan, participantRepo, originationService, quoteService, logger)

	app := fiber.New()
	router.SetupRoutes(app, handler)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Portal is running on port %s in %s mode...", cfg.Port, cfg.Environment)
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down portal...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// registerEventLogging wires the audit-trail subscribers
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeApplicationSubmitted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.ApplicationSubmittedEvent); ok {
			logrus.WithFields(logrus.Fields{
				"applicationID":   e.ApplicationID,
				"submissionID":    e.SubmissionID,
				"participantID":   e.ParticipantID,
				"amount":          e.Amount,
				"netDisbursement": e.NetDisbursement,
			}).Info("Loan application submitted")
		}
	})

	bus.Subscribe(events.EventTypeEligibilityDeclined, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.EligibilityDeclinedEvent); ok {
			logrus.WithFields(logrus.Fields{
				"participantID": e.ParticipantID,
				"reasons":       e.Reasons,
			}).Info("Participant declined at eligibility")
		}
	})
}
