package usecase

import (
	"context"
	"testing"
	"time"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/stretchr/testify/require"
)

func TestForgotPassword_IssuesToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeResetTokenRepo()

	user, err := domain.NewUser("tenant@dar360.ae", "old-pass", "Omar Ali", "", domain.RoleTenant)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), user))

	uc := NewForgotPasswordUseCase(userRepo, tokenRepo)
	require.NoError(t, uc.Execute(context.Background(), "tenant@dar360.ae"))

	require.Len(t, tokenRepo.tokens, 1)
	for _, token := range tokenRepo.tokens {
		require.Equal(t, user.ID, token.UserID)
		require.True(t, token.ExpiresAt.After(time.Now().UTC()))
	}
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeResetTokenRepo()

	uc := NewForgotPasswordUseCase(userRepo, tokenRepo)
	require.NoError(t, uc.Execute(context.Background(), "nobody@dar360.ae"))
	require.Empty(t, tokenRepo.tokens)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeResetTokenRepo()

	user, err := domain.NewUser("tenant@dar360.ae", "old-pass", "Omar Ali", "", domain.RoleTenant)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), user))

	rawToken := "test-reset-token"
	require.NoError(t, tokenRepo.Create(context.Background(), &port.ResetToken{
		TokenHash: HashResetToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}))

	uc := NewResetPasswordUseCase(userRepo, tokenRepo)
	require.NoError(t, uc.Execute(context.Background(), rawToken, "brand-new-pass"))

	require.True(t, user.CheckPassword("brand-new-pass"))
	require.False(t, user.CheckPassword("old-pass"))

	// Tokens are single-use.
	require.ErrorIs(t, uc.Execute(context.Background(), rawToken, "another-pass"),
		domain.ErrTokenInvalid)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeResetTokenRepo()

	user, err := domain.NewUser("tenant@dar360.ae", "old-pass", "Omar Ali", "", domain.RoleTenant)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), user))

	rawToken := "stale-token"
	require.NoError(t, tokenRepo.Create(context.Background(), &port.ResetToken{
		TokenHash: HashResetToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	uc := NewResetPasswordUseCase(userRepo, tokenRepo)
	require.ErrorIs(t, uc.Execute(context.Background(), rawToken, "brand-new-pass"),
		domain.ErrTokenInvalid)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	uc := NewResetPasswordUseCase(newFakeUserRepo(), newFakeResetTokenRepo())
	require.ErrorIs(t, uc.Execute(context.Background(), "whatever", "short"),
		domain.ErrValidation)
}
