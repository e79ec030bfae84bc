package usecase

import (
	"context"
	"testing"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestListProperties_FilterReachesRepository(t *testing.T) {
	propertyRepo := newFakePropertyRepo()
	uc := NewListPropertiesUseCase(propertyRepo)

	status := domain.PropertyAvailable
	ownerID := uuid.New()
	area := "Dubai Marina"
	filter := port.PropertyFilter{
		Status:  &status,
		OwnerID: &ownerID,
		Area:    &area,
		Limit:   10,
		Offset:  20,
	}

	_, err := uc.Execute(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, filter, propertyRepo.lastListFilter)
}
