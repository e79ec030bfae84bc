package token_adapter

import (
	"context"
	"testing"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	user := &domain.User{
		ID:    uuid.New(),
		Email: "agent@dar360.ae",
		Role:  domain.RoleAgent,
	}

	token, err := svc.GenerateToken(context.Background(), user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, domain.RoleAgent, claims.Role)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	user := &domain.User{ID: uuid.New(), Email: "agent@dar360.ae", Role: domain.RoleAgent}
	token, err := svc.GenerateToken(context.Background(), user, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer, err := NewTokenService("key-one")
	require.NoError(t, err)
	verifier, err := NewTokenService("key-two")
	require.NoError(t, err)

	user := &domain.User{ID: uuid.New(), Email: "agent@dar360.ae", Role: domain.RoleAgent}
	token, err := issuer.GenerateToken(context.Background(), user, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = verifier.ValidateToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestNewTokenService_EmptyKey(t *testing.T) {
	_, err := NewTokenService("")
	require.Error(t, err)
}
