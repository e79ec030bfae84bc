package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type DeletePropertyUseCase struct {
	propertyRepo port.PropertyRepositoryPort
	contractRepo port.ContractRepositoryPort
}

func NewDeletePropertyUseCase(propertyRepo port.PropertyRepositoryPort, contractRepo port.ContractRepositoryPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{propertyRepo: propertyRepo, contractRepo: contractRepo}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteProperty", "property_id": id.String()})
	ucLogger.Info("Use case started: deleting property", nil)

	property, err := uc.propertyRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return domain.ErrPropertyNotFound
	}

	active, err := uc.contractRepo.FindActiveByProperty(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to check for active contract", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if active != nil {
		ucLogger.Warn("Delete rejected: property has an active contract", port.Fields{"contract_id": active.ID.String()})
		return domain.ErrContractActiveExists
	}

	if err := uc.propertyRepo.Delete(ctx, id); err != nil {
		ucLogger.Error("Repository failed to delete property", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: property deleted", nil)
	return nil
}
