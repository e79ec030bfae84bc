package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ResetPasswordUseCase struct {
	userRepo  port.UserRepositoryPort
	tokenRepo port.ResetTokenRepositoryPort
}

func NewResetPasswordUseCase(userRepo port.UserRepositoryPort, tokenRepo port.ResetTokenRepositoryPort) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{userRepo: userRepo, tokenRepo: tokenRepo}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, token, newPassword string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ResetPassword"})
	ucLogger.Info("Use case started: resetting password with token", nil)

	if len(newPassword) < 8 {
		ucLogger.Warn("Reset failed: new password too short", nil)
		return domain.ErrValidation
	}

	tokenHash := HashResetToken(token)
	resetToken, err := uc.tokenRepo.FindValid(ctx, tokenHash, time.Now().UTC())
	if err != nil {
		ucLogger.Error("Repository failed to look up reset token", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if resetToken == nil {
		ucLogger.Warn("Reset failed: unknown or expired token", nil)
		return domain.ErrTokenInvalid
	}

	user, err := uc.userRepo.FindByID(ctx, resetToken.UserID)
	if err != nil {
		ucLogger.Error("Repository failed to find user for reset token", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Reset failed: user for token no longer exists", nil)
		return domain.ErrUserNotFound
	}

	if err := user.SetPassword(newPassword); err != nil {
		ucLogger.Error("Failed to hash new password", err, nil)
		return err
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		ucLogger.Error("Repository failed to update user password", err, nil)
		return err
	}
	if err := uc.tokenRepo.Consume(ctx, tokenHash); err != nil {
		ucLogger.Error("Repository failed to consume reset token", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: password reset", port.Fields{"user_id": user.ID.String()})
	return nil
}
