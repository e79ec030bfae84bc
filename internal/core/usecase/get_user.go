package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type GetUserUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetUserUseCase(userRepo port.UserRepositoryPort) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetUser", "user_id": id.String()})

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("User not found", nil)
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
