package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListViewingsUseCase struct {
	viewingRepo port.ViewingRepositoryPort
}

func NewListViewingsUseCase(viewingRepo port.ViewingRepositoryPort) *ListViewingsUseCase {
	return &ListViewingsUseCase{viewingRepo: viewingRepo}
}

func (uc *ListViewingsUseCase) Execute(ctx context.Context, filter port.ViewingFilter) ([]*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListViewings"})

	viewings, err := uc.viewingRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list viewings", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return viewings, nil
}
