package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// SavedPropertyRepositoryPort persists the per-user saved-properties set.
// Add and Remove are both idempotent: saving twice or unsaving an absent
// entry leaves the set membership unchanged.
type SavedPropertyRepositoryPort interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListProperties(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Property, error)
}
