package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type UpdateMaintenanceUseCase struct {
	maintenanceRepo port.MaintenanceRepositoryPort
	publisher       port.EventPublisherPort
}

func NewUpdateMaintenanceUseCase(maintenanceRepo port.MaintenanceRepositoryPort, publisher port.EventPublisherPort) *UpdateMaintenanceUseCase {
	return &UpdateMaintenanceUseCase{maintenanceRepo: maintenanceRepo, publisher: publisher}
}

func (uc *UpdateMaintenanceUseCase) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.MaintenancePatch) (*domain.MaintenanceRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateMaintenance", "maintenance_id": id.String()})
	ucLogger.Info("Use case started: updating maintenance request", nil)

	request, err := uc.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find maintenance request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if request == nil {
		ucLogger.Warn("Maintenance request not found", nil)
		return nil, domain.ErrMaintenanceNotFound
	}

	now := time.Now().UTC()
	if patch.Cost != nil {
		if *patch.Cost < 0 {
			return nil, domain.ErrValidation
		}
		request.Cost = patch.Cost
	}
	if patch.Notes != nil {
		request.Notes = *patch.Notes
	}
	statusChanged := false
	if patch.Status != nil {
		if !domain.ValidMaintenanceStatus(*patch.Status) {
			ucLogger.Warn("Update rejected: unknown maintenance status", port.Fields{"status": *patch.Status})
			return nil, domain.ErrValidation
		}
		prev := request.Status
		if err := request.Transition(domain.MaintenanceStatus(*patch.Status), now); err != nil {
			ucLogger.Warn("Update rejected: invalid status transition", port.Fields{
				"from": string(prev),
				"to":   *patch.Status,
			})
			return nil, err
		}
		statusChanged = prev != request.Status
	}
	request.UpdatedAt = now

	if err := uc.maintenanceRepo.Update(ctx, request); err != nil {
		ucLogger.Error("Repository failed to update maintenance request", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	if statusChanged {
		event := port.DomainEvent{
			Type:       port.EventMaintenanceUpdated,
			UserID:     request.TenantID,
			OccurredAt: now,
			Payload: map[string]interface{}{
				"maintenance_id": request.ID.String(),
				"property_id":    request.PropertyID.String(),
				"status":         string(request.Status),
			},
		}
		if err := uc.publisher.Publish(ctx, event); err != nil {
			ucLogger.Warn("Failed to publish maintenance.updated event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished: maintenance request updated", nil)
	return request, nil
}
