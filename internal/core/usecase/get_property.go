package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type GetPropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
}

func NewGetPropertyUseCase(propertyRepo port.PropertyRepositoryPort) *GetPropertyUseCase {
	return &GetPropertyUseCase{propertyRepo: propertyRepo}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetProperty", "property_id": id.String()})

	property, err := uc.propertyRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}
