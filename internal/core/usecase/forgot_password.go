package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/port"
)

const resetTokenTTL = 1 * time.Hour

// ForgotPasswordUseCase issues a single-use reset token. Whether the email
// exists or not, the caller gets the same (empty) answer so accounts cannot
// be enumerated.
type ForgotPasswordUseCase struct {
	userRepo  port.UserRepositoryPort
	tokenRepo port.ResetTokenRepositoryPort
}

func NewForgotPasswordUseCase(userRepo port.UserRepositoryPort, tokenRepo port.ResetTokenRepositoryPort) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{userRepo: userRepo, tokenRepo: tokenRepo}
}

func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ForgotPassword",
		"email":    email,
	})
	ucLogger.Info("Use case started: issuing password reset token", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed to find user by email", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		// Deliberately indistinguishable from the success path.
		ucLogger.Warn("Reset requested for unknown email", nil)
		return nil
	}

	rawToken, err := randomToken()
	if err != nil {
		ucLogger.Error("Failed to generate reset token", err, nil)
		return err
	}

	resetToken := &port.ResetToken{
		TokenHash: HashResetToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := uc.tokenRepo.Create(ctx, resetToken); err != nil {
		ucLogger.Error("Repository failed to store reset token", err, nil)
		return err
	}

	// Delivery is an external concern (mail/SMS). Until a channel is wired,
	// operators can hand the token over from the log.
	ucLogger.Info("Use case finished: reset token issued", port.Fields{
		"user_id":     user.ID.String(),
		"reset_token": rawToken,
		"expires_at":  resetToken.ExpiresAt,
	})
	return nil
}

// HashResetToken is the storage form of a reset token: hex SHA-256 of the
// raw value.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
