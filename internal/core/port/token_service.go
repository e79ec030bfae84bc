package port

import (
	"context"
	"time"

	"dar360-service/internal/core/domain"
)

// TokenServicePort issues and validates auth tokens.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}
