package usecases_port

import (
	"context"
	"time"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

// ScheduleViewingInput carries a viewing request (agent-scheduled or
// tenant-requested, the shape is the same).
type ScheduleViewingInput struct {
	PropertyID  uuid.UUID
	TenantName  string
	TenantPhone string
	Date        time.Time
	TimeSlot    string
}

// ViewingPatch holds the re-schedulable fields.
type ViewingPatch struct {
	Date     *time.Time
	TimeSlot *string
	Notes    *string
}

type ScheduleViewingUseCasePort interface {
	Execute(ctx context.Context, input ScheduleViewingInput) (*domain.Viewing, error)
}

type ListViewingsUseCasePort interface {
	Execute(ctx context.Context, filter port.ViewingFilter) ([]*domain.Viewing, error)
}

type GetViewingUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Viewing, error)
}

type UpdateViewingUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, patch ViewingPatch) (*domain.Viewing, error)
}

// LogViewingOutcomeUseCasePort records the outcome of a past viewing,
// exactly once.
type LogViewingOutcomeUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, outcome, notes string) (*domain.Viewing, error)
}

type CancelViewingUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Viewing, error)
}
