package usecase

import (
	"context"
	"testing"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/stretchr/testify/require"
)

type fakeTokenService struct{}

func (s *fakeTokenService) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	return "token-" + user.ID.String(), nil
}

func (s *fakeTokenService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}

func TestRegisterUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(userRepo, &fakeTokenService{}, 24*time.Hour)

	user, token, err := uc.Execute(context.Background(), "agent@dar360.ae", "s3cret-pass",
		"Sara Ahmed", "+971501112233", domain.RoleAgent)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.RoleAgent, user.Role)
	require.True(t, user.CheckPassword("s3cret-pass"))
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(userRepo, &fakeTokenService{}, 24*time.Hour)

	_, _, err := uc.Execute(context.Background(), "agent@dar360.ae", "s3cret-pass",
		"Sara Ahmed", "", domain.RoleAgent)
	require.NoError(t, err)

	_, _, err = uc.Execute(context.Background(), "agent@dar360.ae", "other-pass",
		"Impostor", "", domain.RoleOwner)
	require.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestRegisterUser_UnknownRole(t *testing.T) {
	uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakeTokenService{}, 24*time.Hour)
	_, _, err := uc.Execute(context.Background(), "x@dar360.ae", "s3cret-pass", "X", "", domain.Role("admin"))
	require.ErrorIs(t, err, domain.ErrValidation)
}
