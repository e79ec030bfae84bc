package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type ListContractPaymentsUseCase struct {
	paymentRepo  port.PaymentRepositoryPort
	contractRepo port.ContractRepositoryPort
}

func NewListContractPaymentsUseCase(paymentRepo port.PaymentRepositoryPort, contractRepo port.ContractRepositoryPort) *ListContractPaymentsUseCase {
	return &ListContractPaymentsUseCase{paymentRepo: paymentRepo, contractRepo: contractRepo}
}

func (uc *ListContractPaymentsUseCase) Execute(ctx context.Context, contractID uuid.UUID) ([]*domain.ChequePayment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListContractPayments", "contract_id": contractID.String()})

	contract, err := uc.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		ucLogger.Error("Repository failed to find contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if contract == nil {
		ucLogger.Warn("Contract not found", nil)
		return nil, domain.ErrContractNotFound
	}

	cheques, err := uc.paymentRepo.ListByContract(ctx, contractID)
	if err != nil {
		ucLogger.Error("Repository failed to list cheque payments", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return cheques, nil
}
