package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// RegisterUserUseCasePort registers an account and returns it with a fresh
// auth token.
type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, email, password, name, phone string, role domain.Role) (*domain.User, string, error)
}

// LoginUserUseCasePort authenticates by email/password.
type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error)
}

// ValidateTokenUseCasePort checks a bearer token and returns its claims.
type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, token string) (*domain.Claims, error)
}

// ChangePasswordUseCasePort rotates the password after verifying the
// current one.
type ChangePasswordUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// ForgotPasswordUseCasePort issues a single-use reset token for the account.
// The raw token is handed to the delivery channel, never returned to the
// HTTP caller.
type ForgotPasswordUseCasePort interface {
	Execute(ctx context.Context, email string) error
}

// ResetPasswordUseCasePort consumes a reset token and sets a new password.
type ResetPasswordUseCasePort interface {
	Execute(ctx context.Context, token, newPassword string) error
}
