package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type VerifyReraUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewVerifyReraUseCase(userRepo port.UserRepositoryPort) *VerifyReraUseCase {
	return &VerifyReraUseCase{userRepo: userRepo}
}

// Execute records a successful RERA broker registration check for an agent.
func (uc *VerifyReraUseCase) Execute(ctx context.Context, userID uuid.UUID, brn string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "VerifyRera", "user_id": userID.String()})
	ucLogger.Info("Use case started: verify RERA BRN", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("User not found", nil)
		return nil, domain.ErrUserNotFound
	}

	if err := user.VerifyRera(brn, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			ucLogger.Warn("RERA verification rejected: user is not an agent", port.Fields{"role": string(user.Role)})
			return nil, err
		}
		ucLogger.Warn("RERA verification rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		ucLogger.Error("Repository failed to update user", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: RERA BRN verified", port.Fields{"rera_brn": brn})
	return user, nil
}
