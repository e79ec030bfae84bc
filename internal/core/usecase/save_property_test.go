package usecase

import (
	"context"
	"testing"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSaveProperty_Idempotent(t *testing.T) {
	savedRepo := newFakeSavedPropertyRepo()
	propertyRepo := newFakePropertyRepo()

	property, err := domain.NewProperty(uuid.New(), nil, "Marina View 1BR", "", "", "Dubai Marina",
		domain.TypeApartment, 1, 2, 850, 95000, 4, 5000, nil)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Create(context.Background(), property))

	userID := uuid.New()
	uc := NewSavePropertyUseCase(savedRepo, propertyRepo)

	require.NoError(t, uc.Execute(context.Background(), userID, property.ID))
	require.NoError(t, uc.Execute(context.Background(), userID, property.ID))

	ids, err := savedRepo.ListIDs(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{property.ID}, ids)
}

func TestSaveProperty_UnknownProperty(t *testing.T) {
	uc := NewSavePropertyUseCase(newFakeSavedPropertyRepo(), newFakePropertyRepo())
	err := uc.Execute(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestUnsaveProperty_AbsentIsNoOp(t *testing.T) {
	savedRepo := newFakeSavedPropertyRepo()
	propertyRepo := newFakePropertyRepo()

	property, err := domain.NewProperty(uuid.New(), nil, "Marina View 1BR", "", "", "Dubai Marina",
		domain.TypeApartment, 1, 2, 850, 95000, 4, 5000, nil)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Create(context.Background(), property))

	userID := uuid.New()
	save := NewSavePropertyUseCase(savedRepo, propertyRepo)
	unsave := NewUnsavePropertyUseCase(savedRepo)

	require.NoError(t, save.Execute(context.Background(), userID, property.ID))
	require.NoError(t, unsave.Execute(context.Background(), userID, property.ID))
	require.NoError(t, unsave.Execute(context.Background(), userID, property.ID))

	ids, err := savedRepo.ListIDs(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, ids)
}
