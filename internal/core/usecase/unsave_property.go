package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type UnsavePropertyUseCase struct {
	savedRepo port.SavedPropertyRepositoryPort
}

func NewUnsavePropertyUseCase(savedRepo port.SavedPropertyRepositoryPort) *UnsavePropertyUseCase {
	return &UnsavePropertyUseCase{savedRepo: savedRepo}
}

// Execute removes a bookmark. Removing an absent bookmark is a no-op.
func (uc *UnsavePropertyUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UnsaveProperty",
		"user_id":     userID.String(),
		"property_id": propertyID.String(),
	})

	if err := uc.savedRepo.Remove(ctx, userID, propertyID); err != nil {
		ucLogger.Error("Repository failed to remove saved property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Property unsaved", nil)
	return nil
}
