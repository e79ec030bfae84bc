package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type ChangePasswordUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewChangePasswordUseCase(userRepo port.UserRepositoryPort) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ChangePassword",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started: changing password", nil)

	if len(newPassword) < 8 {
		ucLogger.Warn("Change password failed: new password too short", nil)
		return domain.ErrValidation
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Change password failed: user not found", nil)
		return domain.ErrUserNotFound
	}

	if !user.CheckPassword(currentPassword) {
		ucLogger.Warn("Change password failed: current password mismatch", nil)
		return domain.ErrInvalidCredentials
	}

	if err := user.SetPassword(newPassword); err != nil {
		ucLogger.Error("Failed to hash new password", err, nil)
		return err
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		ucLogger.Error("Repository failed to update user", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: password changed", nil)
	return nil
}
