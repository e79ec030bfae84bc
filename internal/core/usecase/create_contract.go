package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"
)

type CreateContractUseCase struct {
	contractRepo port.ContractRepositoryPort
	propertyRepo port.PropertyRepositoryPort
}

func NewCreateContractUseCase(contractRepo port.ContractRepositoryPort, propertyRepo port.PropertyRepositoryPort) *CreateContractUseCase {
	return &CreateContractUseCase{contractRepo: contractRepo, propertyRepo: propertyRepo}
}

func (uc *CreateContractUseCase) Execute(ctx context.Context, input usecases_port.CreateContractInput) (*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateContract",
		"property_id": input.PropertyID.String(),
	})
	ucLogger.Info("Use case started: creating draft contract", nil)

	property, err := uc.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	active, err := uc.contractRepo.FindActiveByProperty(ctx, input.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed to check for active contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if active != nil {
		ucLogger.Warn("Create rejected: property already has an active contract", port.Fields{"contract_id": active.ID.String()})
		return nil, domain.ErrContractActiveExists
	}

	contract, err := domain.NewContract(property, input.TenantName, input.TenantEmail, input.TenantPhone,
		input.StartDate, input.EndDate, input.Rent, input.Cheques, input.Deposit, nil)
	if err != nil {
		ucLogger.Warn("Contract validation failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"contract_id": contract.ID.String()})

	if err := uc.contractRepo.Create(ctx, contract); err != nil {
		ucLogger.Error("Repository failed to create contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: draft contract created", nil)
	return contract, nil
}
