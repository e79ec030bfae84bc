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

type ScheduleViewingUseCase struct {
	viewingRepo  port.ViewingRepositoryPort
	propertyRepo port.PropertyRepositoryPort
	publisher    port.EventPublisherPort
}

func NewScheduleViewingUseCase(viewingRepo port.ViewingRepositoryPort, propertyRepo port.PropertyRepositoryPort, publisher port.EventPublisherPort) *ScheduleViewingUseCase {
	return &ScheduleViewingUseCase{
		viewingRepo:  viewingRepo,
		propertyRepo: propertyRepo,
		publisher:    publisher,
	}
}

func (uc *ScheduleViewingUseCase) Execute(ctx context.Context, input usecases_port.ScheduleViewingInput) (*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ScheduleViewing",
		"property_id": input.PropertyID.String(),
	})
	ucLogger.Info("Use case started: scheduling viewing", nil)

	property, err := uc.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	viewing, err := domain.NewViewing(input.PropertyID, input.TenantName, input.TenantPhone, input.Date, input.TimeSlot)
	if err != nil {
		ucLogger.Warn("Viewing validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}
	viewing.PropertyTitle = property.Title
	viewing.PropertyArea = property.Area

	ucLogger = ucLogger.WithFields(port.Fields{"viewing_id": viewing.ID.String()})

	if err := uc.viewingRepo.Create(ctx, viewing); err != nil {
		ucLogger.Error("Repository failed to create viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	event := port.DomainEvent{
		Type:       port.EventViewingScheduled,
		UserID:     property.OwnerID,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]interface{}{
			"viewing_id":  viewing.ID.String(),
			"property_id": property.ID.String(),
			"tenant_name": viewing.TenantName,
			"date":        viewing.Date.Format("2006-01-02"),
			"time_slot":   viewing.TimeSlot,
		},
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		ucLogger.Warn("Failed to publish viewing.scheduled event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished: viewing scheduled", nil)
	return viewing, nil
}
