package notifier

import (
	"context"

	"dar360-service/internal/core/port"
)

// DirectPublisher implements EventPublisherPort without a broker: events go
// straight to the notifier. Used when RabbitMQ is not configured.
type DirectPublisher struct {
	notifier port.NotifierPort
}

func NewDirectPublisher(notifier port.NotifierPort) *DirectPublisher {
	return &DirectPublisher{notifier: notifier}
}

func (p *DirectPublisher) Publish(ctx context.Context, event port.DomainEvent) error {
	p.notifier.Notify(ctx, event)
	return nil
}
