package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestApplication_Decide(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	for _, decision := range []ApplicationStatus{ApplicationApproved, ApplicationRejected, ApplicationWithdrawn} {
		t.Run(string(decision), func(t *testing.T) {
			a := NewApplication(uuid.New(), uuid.New(), "prefers July move-in")
			require.Equal(t, ApplicationPending, a.Status)

			require.NoError(t, a.Decide(decision, now))
			require.Equal(t, decision, a.Status)
			require.NotNil(t, a.DecidedAt)

			// All decisions are terminal.
			require.ErrorIs(t, a.Decide(ApplicationApproved, now), ErrInvalidTransition)
		})
	}
}

func TestApplication_DecidePendingIsNotADecision(t *testing.T) {
	a := NewApplication(uuid.New(), uuid.New(), "")
	require.ErrorIs(t, a.Decide(ApplicationPending, time.Now()), ErrInvalidTransition)
}
