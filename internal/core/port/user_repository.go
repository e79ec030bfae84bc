package port

import (
	"context"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// UserFilter narrows List results. A nil Role returns every role.
type UserFilter struct {
	Role   *domain.Role
	Limit  int
	Offset int
}

// UserRepositoryPort persists accounts. Find methods return (nil, nil) when
// no row matches and (nil, error) on storage failure.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}

// ResetToken is a single-use password reset credential. Only the SHA-256 hex
// of the token is stored.
type ResetToken struct {
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// ResetTokenRepositoryPort stores password reset tokens.
type ResetTokenRepositoryPort interface {
	Create(ctx context.Context, token *ResetToken) error
	// FindValid returns (nil, nil) when the token is unknown or expired.
	FindValid(ctx context.Context, tokenHash string, now time.Time) (*ResetToken, error)
	// Consume deletes the token so it cannot be replayed.
	Consume(ctx context.Context, tokenHash string) error
}
