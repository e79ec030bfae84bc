package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type ListSavedPropertiesUseCase struct {
	savedRepo port.SavedPropertyRepositoryPort
}

func NewListSavedPropertiesUseCase(savedRepo port.SavedPropertyRepositoryPort) *ListSavedPropertiesUseCase {
	return &ListSavedPropertiesUseCase{savedRepo: savedRepo}
}

func (uc *ListSavedPropertiesUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListSavedProperties", "user_id": userID.String()})

	properties, err := uc.savedRepo.ListProperties(ctx, userID, limit, offset)
	if err != nil {
		ucLogger.Error("Repository failed to list saved properties", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return properties, nil
}
