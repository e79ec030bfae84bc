package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// CommissionFilter narrows List results.
type CommissionFilter struct {
	Status  *domain.CommissionStatus
	AgentID *uuid.UUID
	Limit   int
	Offset  int
}

// CommissionRepositoryPort persists commission records. Creation happens
// inside the contract-signing transaction; this port covers reads and
// status updates.
type CommissionRepositoryPort interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Commission, error)
	List(ctx context.Context, filter CommissionFilter) ([]*domain.Commission, error)
	Update(ctx context.Context, commission *domain.Commission) error
}
