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

type UpdatePropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
}

func NewUpdatePropertyUseCase(propertyRepo port.PropertyRepositoryPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{propertyRepo: propertyRepo}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.PropertyPatch) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateProperty", "property_id": id.String()})
	ucLogger.Info("Use case started: updating property", nil)

	property, err := uc.propertyRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	if patch.Title != nil {
		property.Title = *patch.Title
	}
	if patch.Building != nil {
		property.Building = *patch.Building
	}
	if patch.Unit != nil {
		property.Unit = *patch.Unit
	}
	if patch.Area != nil {
		property.Area = *patch.Area
	}
	if patch.Type != nil {
		if !domain.ValidPropertyType(*patch.Type) {
			ucLogger.Warn("Update rejected: unknown property type", port.Fields{"type": *patch.Type})
			return nil, domain.ErrValidation
		}
		property.Type = domain.PropertyType(*patch.Type)
	}
	if patch.Beds != nil {
		if *patch.Beds < 0 {
			return nil, domain.ErrValidation
		}
		property.Beds = *patch.Beds
	}
	if patch.Baths != nil {
		if *patch.Baths < 1 {
			return nil, domain.ErrValidation
		}
		property.Baths = *patch.Baths
	}
	if patch.Sqft != nil {
		if *patch.Sqft <= 0 {
			return nil, domain.ErrValidation
		}
		property.Sqft = *patch.Sqft
	}
	if patch.Rent != nil {
		if *patch.Rent <= 0 {
			return nil, domain.ErrValidation
		}
		property.Rent = *patch.Rent
	}
	if patch.Cheques != nil {
		if *patch.Cheques < 1 || *patch.Cheques > 12 {
			return nil, domain.ErrValidation
		}
		property.Cheques = *patch.Cheques
	}
	if patch.Deposit != nil {
		if *patch.Deposit < 0 {
			return nil, domain.ErrValidation
		}
		property.Deposit = *patch.Deposit
	}
	if patch.Images != nil {
		property.Images = patch.Images
	}
	if patch.Status != nil {
		if !domain.ValidPropertyStatus(*patch.Status) {
			ucLogger.Warn("Update rejected: unknown property status", port.Fields{"status": *patch.Status})
			return nil, domain.ErrValidation
		}
		if err := property.Transition(domain.PropertyStatus(*patch.Status)); err != nil {
			ucLogger.Warn("Update rejected: invalid status transition", port.Fields{
				"from": string(property.Status),
				"to":   *patch.Status,
			})
			return nil, err
		}
	}
	property.UpdatedAt = time.Now().UTC()

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		ucLogger.Error("Repository failed to update property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: property updated", nil)
	return property, nil
}
