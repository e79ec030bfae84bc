package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type UpdateUserUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewUpdateUserUseCase(userRepo port.UserRepositoryPort) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.UserPatch) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateUser", "user_id": id.String()})
	ucLogger.Info("Use case started: update user profile", nil)

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("User not found", nil)
		return nil, domain.ErrUserNotFound
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Company != nil {
		user.Company = *patch.Company
	}
	if patch.ReraBRN != nil {
		user.ReraBRN = *patch.ReraBRN
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		ucLogger.Error("Repository failed to update user", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: user profile updated", nil)
	return user, nil
}
