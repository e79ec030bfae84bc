package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListUsersUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewListUsersUseCase(userRepo port.UserRepositoryPort) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, filter port.UserFilter) ([]*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListUsers"})

	users, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list users", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return users, nil
}
