package usecase

import (
	"context"
	"testing"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testPendingContract(t *testing.T, propertyRepo *fakePropertyRepo, contractRepo *fakeContractRepo,
	agentID *uuid.UUID) (*domain.Contract, *domain.Property) {
	t.Helper()

	property, err := domain.NewProperty(uuid.New(), agentID, "Marina View 1BR", "Marina Gate", "1204",
		"Dubai Marina", domain.TypeApartment, 1, 2, 850, 95000, 4, 5000, nil)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Create(context.Background(), property))

	contract, err := domain.NewContract(property, "Aisha Khan", "aisha@example.com", "",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0, nil)
	require.NoError(t, err)
	require.NoError(t, contract.Transition(domain.ContractPendingSignature))
	require.NoError(t, contractRepo.Create(context.Background(), contract))

	return contract, property
}

func TestVerifySignatureOTP_SignsContract(t *testing.T) {
	contractRepo := newFakeContractRepo()
	propertyRepo := newFakePropertyRepo()
	publisher := &fakePublisher{}
	agentID := uuid.New()

	contract, property := testPendingContract(t, propertyRepo, contractRepo, &agentID)

	session, err := domain.NewSignatureSession(contract.ID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, contractRepo.ReplaceSignatureSession(context.Background(), session))

	uc := NewVerifySignatureOTPUseCase(contractRepo, propertyRepo, publisher, decimal.NewFromInt(5))
	signed, err := uc.Execute(context.Background(), contract.ID, session.Code)
	require.NoError(t, err)

	require.Equal(t, domain.ContractSigned, signed.Status)
	require.NotNil(t, signed.SignedAt)
	require.Equal(t, domain.PropertyRented, property.Status)

	// The full signing result went through the repository transaction.
	require.Len(t, contractRepo.signedCheques, contract.Cheques)
	var total int64
	for _, cheque := range contractRepo.signedCheques {
		total += cheque.Amount
	}
	require.Equal(t, contract.Rent, total)

	require.NotNil(t, contractRepo.signedCommission)
	require.Equal(t, agentID, contractRepo.signedCommission.AgentID)
	require.True(t, contractRepo.signedCommission.CommissionAmount.Equal(decimal.NewFromInt(4750)),
		"got %s", contractRepo.signedCommission.CommissionAmount)

	// The used session is gone and the event went out.
	remaining, err := contractRepo.FindSignatureSession(context.Background(), contract.ID)
	require.NoError(t, err)
	require.Nil(t, remaining)

	require.Len(t, publisher.events, 1)
	require.Equal(t, "contract.signed", publisher.events[0].Type)
	require.Equal(t, property.OwnerID, publisher.events[0].UserID)
}

func TestVerifySignatureOTP_NoCommissionWithoutAgent(t *testing.T) {
	contractRepo := newFakeContractRepo()
	propertyRepo := newFakePropertyRepo()

	contract, _ := testPendingContract(t, propertyRepo, contractRepo, nil)

	session, err := domain.NewSignatureSession(contract.ID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, contractRepo.ReplaceSignatureSession(context.Background(), session))

	uc := NewVerifySignatureOTPUseCase(contractRepo, propertyRepo, &fakePublisher{}, decimal.NewFromInt(5))
	_, err = uc.Execute(context.Background(), contract.ID, session.Code)
	require.NoError(t, err)

	require.Nil(t, contractRepo.signedCommission)
}

func TestVerifySignatureOTP_WrongCodePersistsAttempt(t *testing.T) {
	contractRepo := newFakeContractRepo()
	propertyRepo := newFakePropertyRepo()

	contract, _ := testPendingContract(t, propertyRepo, contractRepo, nil)

	session, err := domain.NewSignatureSession(contract.ID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, contractRepo.ReplaceSignatureSession(context.Background(), session))

	uc := NewVerifySignatureOTPUseCase(contractRepo, propertyRepo, &fakePublisher{}, decimal.NewFromInt(5))
	_, err = uc.Execute(context.Background(), contract.ID, "not-the-code")
	require.ErrorIs(t, err, domain.ErrOTPCodeMismatch)

	stored, err := contractRepo.FindSignatureSession(context.Background(), contract.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Attempts)

	// The contract is untouched by a failed attempt.
	require.Equal(t, domain.ContractPendingSignature, contract.Status)
}

func TestVerifySignatureOTP_NoOpenSession(t *testing.T) {
	contractRepo := newFakeContractRepo()
	propertyRepo := newFakePropertyRepo()

	contract, _ := testPendingContract(t, propertyRepo, contractRepo, nil)

	uc := NewVerifySignatureOTPUseCase(contractRepo, propertyRepo, &fakePublisher{}, decimal.NewFromInt(5))
	_, err := uc.Execute(context.Background(), contract.ID, "123456")
	require.ErrorIs(t, err, domain.ErrOTPSessionNotFound)
}

func TestVerifySignatureOTP_ContractNotAwaitingSignature(t *testing.T) {
	contractRepo := newFakeContractRepo()
	propertyRepo := newFakePropertyRepo()

	property, err := domain.NewProperty(uuid.New(), nil, "Marina View 1BR", "", "", "Dubai Marina",
		domain.TypeApartment, 1, 2, 850, 95000, 4, 5000, nil)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Create(context.Background(), property))

	contract, err := domain.NewContract(property, "Aisha Khan", "", "",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0, nil)
	require.NoError(t, err)
	require.NoError(t, contractRepo.Create(context.Background(), contract))

	uc := NewVerifySignatureOTPUseCase(contractRepo, propertyRepo, &fakePublisher{}, decimal.NewFromInt(5))
	_, err = uc.Execute(context.Background(), contract.ID, "123456")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}
