package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListMaintenanceUseCase struct {
	maintenanceRepo port.MaintenanceRepositoryPort
}

func NewListMaintenanceUseCase(maintenanceRepo port.MaintenanceRepositoryPort) *ListMaintenanceUseCase {
	return &ListMaintenanceUseCase{maintenanceRepo: maintenanceRepo}
}

func (uc *ListMaintenanceUseCase) Execute(ctx context.Context, filter port.MaintenanceFilter) ([]*domain.MaintenanceRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListMaintenance"})

	requests, err := uc.maintenanceRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list maintenance requests", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return requests, nil
}
