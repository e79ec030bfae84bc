package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type UpdateCommissionStatusUseCase struct {
	commissionRepo port.CommissionRepositoryPort
}

func NewUpdateCommissionStatusUseCase(commissionRepo port.CommissionRepositoryPort) *UpdateCommissionStatusUseCase {
	return &UpdateCommissionStatusUseCase{commissionRepo: commissionRepo}
}

func (uc *UpdateCommissionStatusUseCase) Execute(ctx context.Context, id uuid.UUID, status string) (*domain.Commission, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "UpdateCommissionStatus",
		"commission_id": id.String(),
		"status":        status,
	})
	ucLogger.Info("Use case started: updating commission status", nil)

	if !domain.ValidCommissionStatus(status) {
		ucLogger.Warn("Update rejected: unknown commission status", nil)
		return nil, domain.ErrValidation
	}

	commission, err := uc.commissionRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find commission", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if commission == nil {
		ucLogger.Warn("Commission not found", nil)
		return nil, domain.ErrCommissionNotFound
	}

	if err := commission.Transition(domain.CommissionStatus(status), time.Now().UTC()); err != nil {
		ucLogger.Warn("Update rejected: invalid status transition", port.Fields{"from": string(commission.Status)})
		return nil, err
	}

	if err := uc.commissionRepo.Update(ctx, commission); err != nil {
		ucLogger.Error("Repository failed to update commission", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: commission status updated", nil)
	return commission, nil
}
