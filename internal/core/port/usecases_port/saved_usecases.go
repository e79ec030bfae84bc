package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

type SavePropertyUseCasePort interface {
	Execute(ctx context.Context, userID, propertyID uuid.UUID) error
}

type UnsavePropertyUseCasePort interface {
	Execute(ctx context.Context, userID, propertyID uuid.UUID) error
}

type ListSavedPropertiesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Property, error)
}

type ListSavedPropertyIDsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
