package events

import (
	"context"
	"testing"
	"time"

	"planportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeStageChanged, func(ctx context.Context, event Event) {
		received <- event
	})

	bus.Emit(context.Background(), StageChangedEvent{
		ApplicationID: "app-1",
		ParticipantID: 1001,
		OldState:      models.StateBasics,
		NewState:      models.StatePayment,
	})

	select {
	case event := <-received:
		stageChanged, ok := event.(StageChangedEvent)
		require.True(t, ok)
		assert.Equal(t, models.StatePayment, stageChanged.NewState)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeApplicationAbandoned, func(ctx context.Context, event Event) {
		received <- event
	})

	bus.Emit(context.Background(), ApplicationStartedEvent{ApplicationID: "app-1", ParticipantID: 1001})

	select {
	case <-received:
		t.Fatal("handler received an event of a different type")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()
	first := make(chan Event, 1)
	second := make(chan Event, 1)

	bus.Subscribe(EventTypeApplicationSubmitted, func(ctx context.Context, event Event) {
		first <- event
	})
	bus.Subscribe(EventTypeApplicationSubmitted, func(ctx context.Context, event Event) {
		second <- event
	})

	bus.Emit(context.Background(), ApplicationSubmittedEvent{ApplicationID: "app-1", SubmissionID: "sub-1"})

	for _, ch := range []chan Event{first, second} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("a subscriber was not invoked")
		}
	}
}

func TestBus_PanickingHandlerDoesNotAffectOthers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeEligibilityDeclined, func(ctx context.Context, event Event) {
		panic("handler failure")
	})
	bus.Subscribe(EventTypeEligibilityDeclined, func(ctx context.Context, event Event) {
		received <- event
	})

	bus.Emit(context.Background(), EligibilityDeclinedEvent{ParticipantID: 1001})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy handler was not invoked")
	}
}
