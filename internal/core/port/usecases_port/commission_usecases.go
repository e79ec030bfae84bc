package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type ListCommissionsUseCasePort interface {
	Execute(ctx context.Context, filter port.CommissionFilter) ([]*domain.Commission, error)
}

type UpdateCommissionStatusUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, status string) (*domain.Commission, error)
}
