package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// MaintenanceFilter narrows List results.
type MaintenanceFilter struct {
	Status     *domain.MaintenanceStatus
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	OwnerID    *uuid.UUID
	Limit      int
	Offset     int
}

// MaintenanceRepositoryPort persists maintenance requests. FindByID returns
// (nil, nil) when no row matches. Reads join property/tenant contact fields.
type MaintenanceRepositoryPort interface {
	Create(ctx context.Context, request *domain.MaintenanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, filter MaintenanceFilter) ([]*domain.MaintenanceRequest, error)
	Update(ctx context.Context, request *domain.MaintenanceRequest) error
}
