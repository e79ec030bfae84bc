package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListCommissionsUseCase struct {
	commissionRepo port.CommissionRepositoryPort
}

func NewListCommissionsUseCase(commissionRepo port.CommissionRepositoryPort) *ListCommissionsUseCase {
	return &ListCommissionsUseCase{commissionRepo: commissionRepo}
}

func (uc *ListCommissionsUseCase) Execute(ctx context.Context, filter port.CommissionFilter) ([]*domain.Commission, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListCommissions"})

	commissions, err := uc.commissionRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list commissions", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return commissions, nil
}
