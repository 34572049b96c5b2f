package events

import (
	"context"
	"sync"

	"planportal/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeApplicationStarted   EventType = "application_started"
	EventTypeEligibilityDeclined  EventType = "eligibility_declined"
	EventTypeStageChanged         EventType = "stage_changed"
	EventTypeApplicationSubmitted EventType = "application_submitted"
	EventTypeApplicationAbandoned EventType = "application_abandoned"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ApplicationStartedEvent fires when an eligible participant opens a new draft
type ApplicationStartedEvent struct {
	ApplicationID string
	ParticipantID int64
}

func (e ApplicationStartedEvent) Type() EventType {
	return EventTypeApplicationStarted
}

// EligibilityDeclinedEvent fires when the eligibility check blocks the flow
type EligibilityDeclinedEvent struct {
	ParticipantID int64
	Reasons       []string
}

func (e EligibilityDeclinedEvent) Type() EventType {
	return EventTypeEligibilityDeclined
}

// StageChangedEvent fires on every forward or backward stage transition
type StageChangedEvent struct {
	ApplicationID string
	ParticipantID int64
	OldState      models.ApplicationState
	NewState      models.ApplicationState
}

func (e StageChangedEvent) Type() EventType {
	return EventTypeStageChanged
}

// ApplicationSubmittedEvent fires once per application, on REVIEW -> CONFIRMED
type ApplicationSubmittedEvent struct {
	ApplicationID   string
	SubmissionID    string
	ParticipantID   int64
	Amount          float64
	NetDisbursement float64
}

func (e ApplicationSubmittedEvent) Type() EventType {
	return EventTypeApplicationSubmitted
}

// ApplicationAbandonedEvent fires when a participant discards a draft
type ApplicationAbandonedEvent struct {
	ApplicationID string
	ParticipantID int64
}

func (e ApplicationAbandonedEvent) Type() EventType {
	return EventTypeApplicationAbandoned
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so emitting never blocks the workflow.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
