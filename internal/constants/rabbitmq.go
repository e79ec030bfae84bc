package constants

// Exchange and queue topology for domain events.
const (
	EventsExchange = "dar360_events"

	// QueueEventsSSE feeds the in-process bridge that pushes events to open
	// dashboard connections.
	QueueEventsSSE = "dar360_events_sse"

	// RoutingKeyEvents matches every domain event ("property.created",
	// "contract.signed", ...).
	RoutingKeyEvents = "dar360.event.#"
)

// RoutingKeyForEvent builds the routing key for one event type.
func RoutingKeyForEvent(eventType string) string {
	return "dar360.event." + eventType
}
