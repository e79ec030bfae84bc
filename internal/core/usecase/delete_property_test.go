package usecase

import (
	"context"
	"testing"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDeleteProperty_BlockedByActiveContract(t *testing.T) {
	propertyRepo := newFakePropertyRepo()
	contractRepo := newFakeContractRepo()

	contract, property := testPendingContract(t, propertyRepo, contractRepo, nil)

	uc := NewDeletePropertyUseCase(propertyRepo, contractRepo)
	require.ErrorIs(t, uc.Execute(context.Background(), property.ID), domain.ErrContractActiveExists)

	// A cancelled contract no longer blocks deletion.
	require.NoError(t, contract.Transition(domain.ContractCancelled))
	require.NoError(t, uc.Execute(context.Background(), property.ID))

	gone, err := propertyRepo.FindByID(context.Background(), property.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestDeleteProperty_NotFound(t *testing.T) {
	uc := NewDeletePropertyUseCase(newFakePropertyRepo(), newFakeContractRepo())
	require.ErrorIs(t, uc.Execute(context.Background(), uuid.New()), domain.ErrPropertyNotFound)
}
