package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// PaymentRepositoryPort persists cheque installments. The schedule is
// created inside the contract-signing transaction.
type PaymentRepositoryPort interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ChequePayment, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.ChequePayment, error)
	Update(ctx context.Context, cheque *domain.ChequePayment) error
}
