package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewProperty_Validation(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name     string
		title    string
		area     string
		propType PropertyType
		baths    int
		sqft     int
		rent     int64
		cheques  int
	}{
		{"missing title", "", "Dubai Marina", TypeApartment, 1, 850, 95000, 4},
		{"missing area", "Marina View 1BR", "", TypeApartment, 1, 850, 95000, 4},
		{"unknown type", "Marina View 1BR", "Dubai Marina", PropertyType("loft"), 1, 850, 95000, 4},
		{"zero baths", "Marina View 1BR", "Dubai Marina", TypeApartment, 0, 850, 95000, 4},
		{"zero sqft", "Marina View 1BR", "Dubai Marina", TypeApartment, 1, 0, 95000, 4},
		{"zero rent", "Marina View 1BR", "Dubai Marina", TypeApartment, 1, 850, 0, 4},
		{"zero cheques", "Marina View 1BR", "Dubai Marina", TypeApartment, 1, 850, 95000, 0},
		{"thirteen cheques", "Marina View 1BR", "Dubai Marina", TypeApartment, 1, 850, 95000, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProperty(ownerID, nil, tt.title, "", "", tt.area, tt.propType,
				1, tt.baths, tt.sqft, tt.rent, tt.cheques, 0, nil)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNewProperty_StartsAvailable(t *testing.T) {
	p := testProperty(t)
	require.Equal(t, PropertyAvailable, p.Status)
	require.False(t, p.CreatedAt.IsZero())
}

func TestPropertyTransitions(t *testing.T) {
	tests := []struct {
		from    PropertyStatus
		to      PropertyStatus
		allowed bool
	}{
		{PropertyAvailable, PropertyReserved, true},
		{PropertyAvailable, PropertyRented, true},
		{PropertyReserved, PropertyRented, true},
		{PropertyReserved, PropertyAvailable, false},
		{PropertyRented, PropertyAvailable, false},
		{PropertyRented, PropertyReserved, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestProperty_Transition(t *testing.T) {
	p := testProperty(t)

	require.NoError(t, p.Transition(PropertyReserved))
	require.Equal(t, PropertyReserved, p.Status)

	// Same-status transition is a no-op.
	require.NoError(t, p.Transition(PropertyReserved))

	require.ErrorIs(t, p.Transition(PropertyAvailable), ErrInvalidTransition)

	require.NoError(t, p.Transition(PropertyRented))
	require.ErrorIs(t, p.Transition(PropertyReserved), ErrInvalidTransition)
}
