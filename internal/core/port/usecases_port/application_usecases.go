package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type SubmitApplicationUseCasePort interface {
	Execute(ctx context.Context, propertyID, tenantID uuid.UUID, notes string) (*domain.Application, error)
}

type ListApplicationsUseCasePort interface {
	Execute(ctx context.Context, filter port.ApplicationFilter) ([]*domain.Application, error)
}

// DecideApplicationUseCasePort moves a pending application to approved,
// rejected or withdrawn. Approval also returns the draft contract it
// created; the other decisions return a nil contract.
type DecideApplicationUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, decision domain.ApplicationStatus,
		actor domain.Claims) (*domain.Application, *domain.Contract, error)
}
