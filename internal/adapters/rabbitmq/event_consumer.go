package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/contracts"
	"dar360-service/internal/core/port"
	"dar360-service/pkg/rabbitmq/rabbitmq_consumer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventConsumerAdapter bridges the events queue to the SSE notifier. It
// validates each body against its schema and drops invalid messages.
type EventConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	notifier port.NotifierPort
	logger   port.LoggerPort
}

func NewEventConsumerAdapter(consumer *rabbitmq_consumer.Consumer, notifier port.NotifierPort, baseLogger port.LoggerPort) (*EventConsumerAdapter, error) {
	if consumer == nil {
		return nil, fmt.Errorf("consumer cannot be nil")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier cannot be nil")
	}
	return &EventConsumerAdapter{
		consumer: consumer,
		notifier: notifier,
		logger:   baseLogger.WithFields(port.Fields{"component": "EventConsumerAdapter"}),
	}, nil
}

// Start blocks consuming the events queue until ctx is cancelled.
func (a *EventConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.Start(ctx, a.handleDelivery)
}

func (a *EventConsumerAdapter) handleDelivery(ctx context.Context, delivery amqp.Delivery) error {
	if traceID, ok := delivery.Headers["x-trace-id"].(string); ok && traceID != "" {
		ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	}

	var event port.DomainEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		a.logger.Error("Failed to unmarshal event, dropping message", err, nil)
		return err
	}

	version := port.EventVersion
	if v, ok := delivery.Headers["event-version"].(string); ok && v != "" {
		version = v
	}

	if err := contracts.ValidateEvent(event.Type, version, delivery.Body); err != nil {
		a.logger.Error("Event failed schema validation, dropping message", err,
			port.Fields{"event_type": event.Type, "event_version": version})
		return err
	}

	a.notifier.Notify(ctx, event)
	return nil
}

func (a *EventConsumerAdapter) Close() {
	a.consumer.Close()
}
