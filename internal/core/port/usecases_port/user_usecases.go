package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

// UserPatch holds the updatable profile fields. Nil pointers are left
// untouched.
type UserPatch struct {
	Name    *string
	Phone   *string
	Company *string
	ReraBRN *string
}

// GetUserUseCasePort fetches one account.
type GetUserUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UpdateUserUseCasePort applies a profile patch.
type UpdateUserUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, patch UserPatch) (*domain.User, error)
}

// ListUsersUseCasePort lists accounts, optionally by role.
type ListUsersUseCasePort interface {
	Execute(ctx context.Context, filter port.UserFilter) ([]*domain.User, error)
}

// VerifyReraUseCasePort records an agent's verified RERA broker number.
type VerifyReraUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, brn string) (*domain.User, error)
}
