package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type UpdateViewingUseCase struct {
	viewingRepo port.ViewingRepositoryPort
}

func NewUpdateViewingUseCase(viewingRepo port.ViewingRepositoryPort) *UpdateViewingUseCase {
	return &UpdateViewingUseCase{viewingRepo: viewingRepo}
}

// Execute re-schedules a viewing. Cancelled viewings and viewings with a
// logged outcome cannot be moved.
func (uc *UpdateViewingUseCase) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.ViewingPatch) (*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateViewing", "viewing_id": id.String()})
	ucLogger.Info("Use case started: updating viewing", nil)

	viewing, err := uc.viewingRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if viewing == nil {
		ucLogger.Warn("Viewing not found", nil)
		return nil, domain.ErrViewingNotFound
	}
	if viewing.CancelledAt != nil {
		ucLogger.Warn("Update rejected: viewing is cancelled", nil)
		return nil, domain.ErrViewingCancelled
	}
	if viewing.Outcome != nil {
		ucLogger.Warn("Update rejected: outcome already logged", nil)
		return nil, domain.ErrOutcomeAlreadySet
	}

	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, domain.ErrValidation
		}
		viewing.Date = patch.Date.UTC().Truncate(24 * time.Hour)
	}
	if patch.TimeSlot != nil {
		if *patch.TimeSlot == "" {
			return nil, domain.ErrValidation
		}
		viewing.TimeSlot = *patch.TimeSlot
	}
	if patch.Notes != nil {
		viewing.Notes = *patch.Notes
	}

	if err := uc.viewingRepo.Update(ctx, viewing); err != nil {
		ucLogger.Error("Repository failed to update viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: viewing updated", nil)
	return viewing, nil
}
