package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type SavePropertyUseCase struct {
	savedRepo    port.SavedPropertyRepositoryPort
	propertyRepo port.PropertyRepositoryPort
}

func NewSavePropertyUseCase(savedRepo port.SavedPropertyRepositoryPort, propertyRepo port.PropertyRepositoryPort) *SavePropertyUseCase {
	return &SavePropertyUseCase{savedRepo: savedRepo, propertyRepo: propertyRepo}
}

// Execute bookmarks a property for the user. Saving twice is a no-op.
func (uc *SavePropertyUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "SaveProperty",
		"user_id":     userID.String(),
		"property_id": propertyID.String(),
	})

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return domain.ErrPropertyNotFound
	}

	if err := uc.savedRepo.Add(ctx, userID, propertyID); err != nil {
		ucLogger.Error("Repository failed to save property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Property saved", nil)
	return nil
}
