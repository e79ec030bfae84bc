package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyFilter narrows List results. Nil fields are not applied; order is
// always created_at DESC.
type PropertyFilter struct {
	Status  *domain.PropertyStatus
	OwnerID *uuid.UUID
	AgentID *uuid.UUID
	Area    *string
	Limit   int
	Offset  int
}

// PropertyRepositoryPort persists rental units. FindByID returns (nil, nil)
// when no row matches. Reads fill the derived ViewingsCount.
type PropertyRepositoryPort interface {
	Create(ctx context.Context, property *domain.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	AppendImages(ctx context.Context, id uuid.UUID, urls []string) error
}
