package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

type ListContractPaymentsUseCasePort interface {
	Execute(ctx context.Context, contractID uuid.UUID) ([]*domain.ChequePayment, error)
}

type MarkChequePaidUseCasePort interface {
	Execute(ctx context.Context, chequeID uuid.UUID, method string) (*domain.ChequePayment, error)
}
