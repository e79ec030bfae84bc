package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestViewing_IsUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		upcoming bool
	}{
		{"tomorrow", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), true},
		{"today counts as upcoming", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"yesterday", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewViewing(uuid.New(), "Omar Ali", "+971500000001", tt.date, "16:00 - 16:30")
			require.NoError(t, err)
			require.Equal(t, tt.upcoming, v.IsUpcoming(now))
		})
	}
}

func TestNewViewing_Validation(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	_, err := NewViewing(uuid.New(), "", "", date, "16:00 - 16:30")
	require.ErrorIs(t, err, ErrValidation)
	_, err = NewViewing(uuid.New(), "Omar Ali", "", date, "")
	require.ErrorIs(t, err, ErrValidation)
	_, err = NewViewing(uuid.New(), "Omar Ali", "", time.Time{}, "16:00 - 16:30")
	require.ErrorIs(t, err, ErrValidation)
}

func TestViewing_LogOutcome(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	past := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	v, err := NewViewing(uuid.New(), "Omar Ali", "", past, "16:00 - 16:30")
	require.NoError(t, err)

	require.NoError(t, v.LogOutcome(OutcomeInterested, "wants to move in July", now))
	require.Equal(t, OutcomeInterested, *v.Outcome)
	require.Equal(t, "wants to move in July", v.Notes)

	// Outcome is set exactly once.
	require.ErrorIs(t, v.LogOutcome(OutcomeNoShow, "", now), ErrOutcomeAlreadySet)
}

func TestViewing_LogOutcome_NotPastYet(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	v, err := NewViewing(uuid.New(), "Omar Ali", "", now.AddDate(0, 0, 1), "10:00 - 10:30")
	require.NoError(t, err)

	require.ErrorIs(t, v.LogOutcome(OutcomeInterested, "", now), ErrViewingNotPast)
}

func TestViewing_LogOutcome_InvalidOutcome(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	v, err := NewViewing(uuid.New(), "Omar Ali", "", now.AddDate(0, 0, -3), "10:00 - 10:30")
	require.NoError(t, err)

	require.ErrorIs(t, v.LogOutcome(ViewingOutcome("maybe"), "", now), ErrValidation)
}

func TestViewing_Cancel(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	v, err := NewViewing(uuid.New(), "Omar Ali", "", now.AddDate(0, 0, 2), "10:00 - 10:30")
	require.NoError(t, err)

	require.NoError(t, v.Cancel(now))
	require.NotNil(t, v.CancelledAt)

	// Cancelling again is a no-op, not an error.
	first := *v.CancelledAt
	require.NoError(t, v.Cancel(now.Add(time.Hour)))
	require.Equal(t, first, *v.CancelledAt)

	// A cancelled viewing cannot receive an outcome.
	require.ErrorIs(t, v.LogOutcome(OutcomeInterested, "", now.AddDate(0, 0, 5)), ErrViewingCancelled)
}

func TestViewing_CancelAfterOutcome(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	v, err := NewViewing(uuid.New(), "Omar Ali", "", now.AddDate(0, 0, -1), "10:00 - 10:30")
	require.NoError(t, err)

	require.NoError(t, v.LogOutcome(OutcomeOfferMade, "", now))
	require.ErrorIs(t, v.Cancel(now), ErrOutcomeAlreadySet)
}
