package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type GetMaintenanceUseCase struct {
	maintenanceRepo port.MaintenanceRepositoryPort
}

func NewGetMaintenanceUseCase(maintenanceRepo port.MaintenanceRepositoryPort) *GetMaintenanceUseCase {
	return &GetMaintenanceUseCase{maintenanceRepo: maintenanceRepo}
}

func (uc *GetMaintenanceUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetMaintenance", "maintenance_id": id.String()})

	request, err := uc.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find maintenance request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		ucLogger.Warn("Maintenance request not found", nil)
		return nil, domain.ErrMaintenanceNotFound
	}
	return request, nil
}
