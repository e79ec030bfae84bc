package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListContractsUseCase struct {
	contractRepo port.ContractRepositoryPort
}

func NewListContractsUseCase(contractRepo port.ContractRepositoryPort) *ListContractsUseCase {
	return &ListContractsUseCase{contractRepo: contractRepo}
}

func (uc *ListContractsUseCase) Execute(ctx context.Context, filter port.ContractFilter) ([]*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListContracts"})

	contracts, err := uc.contractRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list contracts", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return contracts, nil
}
