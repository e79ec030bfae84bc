package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type CancelViewingUseCase struct {
	viewingRepo port.ViewingRepositoryPort
}

func NewCancelViewingUseCase(viewingRepo port.ViewingRepositoryPort) *CancelViewingUseCase {
	return &CancelViewingUseCase{viewingRepo: viewingRepo}
}

func (uc *CancelViewingUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "CancelViewing", "viewing_id": id.String()})
	ucLogger.Info("Use case started: cancelling viewing", nil)

	viewing, err := uc.viewingRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if viewing == nil {
		ucLogger.Warn("Viewing not found", nil)
		return nil, domain.ErrViewingNotFound
	}

	if err := viewing.Cancel(time.Now().UTC()); err != nil {
		ucLogger.Warn("Cancel rejected: outcome already logged", nil)
		return nil, err
	}

	if err := uc.viewingRepo.Update(ctx, viewing); err != nil {
		ucLogger.Error("Repository failed to update viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: viewing cancelled", nil)
	return viewing, nil
}
