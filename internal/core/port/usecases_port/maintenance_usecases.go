package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

// CreateMaintenanceInput carries a tenant's new request.
type CreateMaintenanceInput struct {
	PropertyID  uuid.UUID
	TenantID    uuid.UUID
	Category    string
	Priority    string
	Title       string
	Description string
	Images      []string
}

// MaintenancePatch holds the workable fields: status moves forward, notes
// accumulate, cost is the agent's estimate awaiting owner approval.
type MaintenancePatch struct {
	Status *string
	Notes  *string
	Cost   *int64
}

type CreateMaintenanceRequestUseCasePort interface {
	Execute(ctx context.Context, input CreateMaintenanceInput) (*domain.MaintenanceRequest, error)
}

type ListMaintenanceUseCasePort interface {
	Execute(ctx context.Context, filter port.MaintenanceFilter) ([]*domain.MaintenanceRequest, error)
}

type GetMaintenanceUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error)
}

type UpdateMaintenanceUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, patch MaintenancePatch) (*domain.MaintenanceRequest, error)
}
