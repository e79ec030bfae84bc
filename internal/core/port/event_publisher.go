package port

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Domain event types published to the event exchange and fanned out to the
// SSE stream.
const (
	EventPropertyCreated    = "property.created"
	EventViewingScheduled   = "viewing.scheduled"
	EventViewingOutcome     = "viewing.outcome"
	EventContractSigned     = "contract.signed"
	EventApplicationDecided = "application.decided"
	EventMaintenanceUpdated = "maintenance.updated"
)

// EventVersion is the current schema version of every event payload.
const EventVersion = "1.0.0"

// DomainEvent is one business fact. UserID addresses the dashboard user the
// event is relevant to; Payload must validate against the event's JSON
// Schema in internal/contracts.
type DomainEvent struct {
	Type       string                 `json:"type"`
	UserID     uuid.UUID              `json:"user_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// EventPublisherPort publishes domain events. Implementations must be safe
// to call from request goroutines.
type EventPublisherPort interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// NotifierPort pushes an event to the addressed user's open dashboard
// connections.
type NotifierPort interface {
	Notify(ctx context.Context, event DomainEvent)
}
