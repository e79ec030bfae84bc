package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListPropertiesUseCase struct {
	propertyRepo port.PropertyRepositoryPort
}

func NewListPropertiesUseCase(propertyRepo port.PropertyRepositoryPort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{propertyRepo: propertyRepo}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, filter port.PropertyFilter) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListProperties"})

	properties, err := uc.propertyRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list properties", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return properties, nil
}
