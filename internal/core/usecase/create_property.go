package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"
)

type CreatePropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	publisher    port.EventPublisherPort
}

func NewCreatePropertyUseCase(propertyRepo port.PropertyRepositoryPort, publisher port.EventPublisherPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{propertyRepo: propertyRepo, publisher: publisher}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, input usecases_port.CreatePropertyInput) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateProperty",
		"owner_id": input.OwnerID.String(),
		"area":     input.Area,
	})
	ucLogger.Info("Use case started: creating property listing", nil)

	property, err := domain.NewProperty(input.OwnerID, input.AgentID, input.Title, input.Building, input.Unit,
		input.Area, domain.PropertyType(input.Type), input.Beds, input.Baths, input.Sqft,
		input.Rent, input.Cheques, input.Deposit, input.Images)
	if err != nil {
		ucLogger.Warn("Property validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"property_id": property.ID.String()})

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		ucLogger.Error("Repository failed to create property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	event := port.DomainEvent{
		Type:       port.EventPropertyCreated,
		UserID:     property.OwnerID,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"property_id": property.ID.String(),
			"title":       property.Title,
			"area":        property.Area,
			"rent":        property.Rent,
		},
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		// The listing is persisted; a lost event only delays the dashboard.
		ucLogger.Warn("Failed to publish property.created event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished: property created", nil)
	return property, nil
}
