package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type AddPropertyImagesUseCase struct {
	propertyRepo port.PropertyRepositoryPort
}

func NewAddPropertyImagesUseCase(propertyRepo port.PropertyRepositoryPort) *AddPropertyImagesUseCase {
	return &AddPropertyImagesUseCase{propertyRepo: propertyRepo}
}

func (uc *AddPropertyImagesUseCase) Execute(ctx context.Context, id uuid.UUID, urls []string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "AddPropertyImages",
		"property_id": id.String(),
		"count":       len(urls),
	})
	ucLogger.Info("Use case started: appending property images", nil)

	if len(urls) == 0 {
		return nil, domain.ErrValidation
	}

	property, err := uc.propertyRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	if err := uc.propertyRepo.AppendImages(ctx, id, urls); err != nil {
		ucLogger.Error("Repository failed to append images", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	property.Images = append(property.Images, urls...)

	ucLogger.Info("Use case finished: images appended", nil)
	return property, nil
}
