package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"
)

type CreateMaintenanceRequestUseCase struct {
	maintenanceRepo port.MaintenanceRepositoryPort
	propertyRepo    port.PropertyRepositoryPort
}

func NewCreateMaintenanceRequestUseCase(maintenanceRepo port.MaintenanceRepositoryPort, propertyRepo port.PropertyRepositoryPort) *CreateMaintenanceRequestUseCase {
	return &CreateMaintenanceRequestUseCase{maintenanceRepo: maintenanceRepo, propertyRepo: propertyRepo}
}

func (uc *CreateMaintenanceRequestUseCase) Execute(ctx context.Context, input usecases_port.CreateMaintenanceInput) (*domain.MaintenanceRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateMaintenanceRequest",
		"property_id": input.PropertyID.String(),
		"tenant_id":   input.TenantID.String(),
	})
	ucLogger.Info("Use case started: creating maintenance request", nil)

	property, err := uc.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	request, err := domain.NewMaintenanceRequest(input.PropertyID, input.TenantID,
		domain.MaintenanceCategory(input.Category), domain.MaintenancePriority(input.Priority),
		input.Title, input.Description, input.Images)
	if err != nil {
		ucLogger.Warn("Maintenance request validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}
	request.PropertyBuilding = property.Building
	request.PropertyUnit = property.Unit
	request.PropertyArea = property.Area

	ucLogger = ucLogger.WithFields(port.Fields{"maintenance_id": request.ID.String()})

	if err := uc.maintenanceRepo.Create(ctx, request); err != nil {
		ucLogger.Error("Repository failed to create maintenance request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: maintenance request created", nil)
	return request, nil
}
