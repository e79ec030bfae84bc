package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type SharePropertyUseCase struct {
	propertyRepo  port.PropertyRepositoryPort
	publicBaseURL string
}

func NewSharePropertyUseCase(propertyRepo port.PropertyRepositoryPort, publicBaseURL string) *SharePropertyUseCase {
	return &SharePropertyUseCase{propertyRepo: propertyRepo, publicBaseURL: publicBaseURL}
}

// Execute returns the stable public URL for a listing so agents can hand it
// to prospects outside the product.
func (uc *SharePropertyUseCase) Execute(ctx context.Context, id uuid.UUID) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ShareProperty", "property_id": id.String()})

	property, err := uc.propertyRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return "", fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return "", domain.ErrPropertyNotFound
	}

	return fmt.Sprintf("%s/properties/%s", uc.publicBaseURL, property.ID), nil
}
