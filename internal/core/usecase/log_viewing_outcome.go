package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type LogViewingOutcomeUseCase struct {
	viewingRepo  port.ViewingRepositoryPort
	propertyRepo port.PropertyRepositoryPort
	publisher    port.EventPublisherPort
}

func NewLogViewingOutcomeUseCase(viewingRepo port.ViewingRepositoryPort, propertyRepo port.PropertyRepositoryPort, publisher port.EventPublisherPort) *LogViewingOutcomeUseCase {
	return &LogViewingOutcomeUseCase{
		viewingRepo:  viewingRepo,
		propertyRepo: propertyRepo,
		publisher:    publisher,
	}
}

func (uc *LogViewingOutcomeUseCase) Execute(ctx context.Context, id uuid.UUID, outcome, notes string) (*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "LogViewingOutcome",
		"viewing_id": id.String(),
		"outcome":    outcome,
	})
	ucLogger.Info("Use case started: logging viewing outcome", nil)

	viewing, err := uc.viewingRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if viewing == nil {
		ucLogger.Warn("Viewing not found", nil)
		return nil, domain.ErrViewingNotFound
	}

	if err := viewing.LogOutcome(domain.ViewingOutcome(outcome), notes, time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, domain.ErrViewingCancelled):
			ucLogger.Warn("Outcome rejected: viewing is cancelled", nil)
		case errors.Is(err, domain.ErrOutcomeAlreadySet):
			ucLogger.Warn("Outcome rejected: already logged", nil)
		case errors.Is(err, domain.ErrViewingNotPast):
			ucLogger.Warn("Outcome rejected: viewing has not happened yet", nil)
		default:
			ucLogger.Warn("Outcome rejected", port.Fields{"reason": err.Error()})
		}
		return nil, err
	}

	if err := uc.viewingRepo.Update(ctx, viewing); err != nil {
		ucLogger.Error("Repository failed to update viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	if property, pErr := uc.propertyRepo.FindByID(ctx, viewing.PropertyID); pErr == nil && property != nil {
		event := port.DomainEvent{
			Type:       port.EventViewingOutcome,
			UserID:     property.OwnerID,
			OccurredAt: time.Now().UTC(),
			Payload: map[string]interface{}{
				"viewing_id":  viewing.ID.String(),
				"property_id": viewing.PropertyID.String(),
				"outcome":     outcome,
			},
		}
		if err := uc.publisher.Publish(ctx, event); err != nil {
			ucLogger.Warn("Failed to publish viewing.outcome event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: outcome logged", nil)
	return viewing, nil
}
