package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dar360-service/internal/constants"
	"dar360-service/internal/contextkeys"
	"dar360-service/internal/contracts"
	"dar360-service/internal/core/port"
	"dar360-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisherAdapter publishes domain events to the events exchange.
// Every body is checked against its JSON Schema before it leaves the
// process.
type EventPublisherAdapter struct {
	producer *rabbitmq_producer.Publisher
}

func NewEventPublisherAdapter(producer *rabbitmq_producer.Publisher) (*EventPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &EventPublisherAdapter{producer: producer}, nil
}

func (a *EventPublisherAdapter) Publish(ctx context.Context, event port.DomainEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":  "EventPublisherAdapter",
		"event_type": event.Type,
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal event to JSON", err, nil)
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	if err := contracts.ValidateEvent(event.Type, port.EventVersion, body); err != nil {
		adapterLogger.Error("Event body failed schema validation", err, nil)
		return fmt.Errorf("event body failed schema validation: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    contracts.EventName(event.Type),
			"event-version": port.EventVersion,
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	routingKey := constants.RoutingKeyForEvent(event.Type)
	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, port.Fields{"routing_key": routingKey})
		return err
	}

	adapterLogger.Debug("Event published.", port.Fields{"routing_key": routingKey})
	return nil
}
