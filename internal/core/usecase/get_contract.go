package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type GetContractUseCase struct {
	contractRepo port.ContractRepositoryPort
}

func NewGetContractUseCase(contractRepo port.ContractRepositoryPort) *GetContractUseCase {
	return &GetContractUseCase{contractRepo: contractRepo}
}

func (uc *GetContractUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetContract", "contract_id": id.String()})

	contract, err := uc.contractRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if contract == nil {
		ucLogger.Warn("Contract not found", nil)
		return nil, domain.ErrContractNotFound
	}
	return contract, nil
}
