package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type ListSavedPropertyIDsUseCase struct {
	savedRepo port.SavedPropertyRepositoryPort
}

func NewListSavedPropertyIDsUseCase(savedRepo port.SavedPropertyRepositoryPort) *ListSavedPropertyIDsUseCase {
	return &ListSavedPropertyIDsUseCase{savedRepo: savedRepo}
}

func (uc *ListSavedPropertyIDsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListSavedPropertyIDs", "user_id": userID.String()})

	ids, err := uc.savedRepo.ListIDs(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to list saved property ids", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return ids, nil
}
