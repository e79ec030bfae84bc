package usecase

import (
	"context"
	"testing"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMarkChequePaid(t *testing.T) {
	paymentRepo := newFakePaymentRepo()
	cheque := &domain.ChequePayment{
		ID:           uuid.New(),
		ContractID:   uuid.New(),
		ChequeNumber: 1,
		TotalCheques: 4,
		Amount:       24000,
		DueDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, paymentRepo.Update(context.Background(), cheque))

	uc := NewMarkChequePaidUseCase(paymentRepo)
	paid, err := uc.Execute(context.Background(), cheque.ID, "bank_transfer")
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	require.Equal(t, "bank_transfer", paid.PaidMethod)

	_, err = uc.Execute(context.Background(), cheque.ID, "cash")
	require.ErrorIs(t, err, domain.ErrChequeAlreadyPaid)
}

func TestMarkChequePaid_NotFound(t *testing.T) {
	uc := NewMarkChequePaidUseCase(newFakePaymentRepo())
	_, err := uc.Execute(context.Background(), uuid.New(), "cash")
	require.ErrorIs(t, err, domain.ErrChequeNotFound)
}
