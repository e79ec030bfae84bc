package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// ApplicationFilter narrows List results.
type ApplicationFilter struct {
	Status     *domain.ApplicationStatus
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
	Limit      int
	Offset     int
}

// ApplicationRepositoryPort persists tenant applications. FindByID returns
// (nil, nil) when no row matches.
type ApplicationRepositoryPort interface {
	Create(ctx context.Context, application *domain.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]*domain.Application, error)
	Update(ctx context.Context, application *domain.Application) error

	// Approve applies the approval atomically: the decided application, the
	// linked draft contract and the reserved property.
	Approve(ctx context.Context, application *domain.Application,
		contract *domain.Contract, property *domain.Property) error
}
