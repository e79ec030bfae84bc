package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type GetViewingUseCase struct {
	viewingRepo port.ViewingRepositoryPort
}

func NewGetViewingUseCase(viewingRepo port.ViewingRepositoryPort) *GetViewingUseCase {
	return &GetViewingUseCase{viewingRepo: viewingRepo}
}

func (uc *GetViewingUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetViewing", "viewing_id": id.String()})

	viewing, err := uc.viewingRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find viewing", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if viewing == nil {
		ucLogger.Warn("Viewing not found", nil)
		return nil, domain.ErrViewingNotFound
	}
	return viewing, nil
}
