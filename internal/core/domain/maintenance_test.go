package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testMaintenanceRequest(t *testing.T) *MaintenanceRequest {
	t.Helper()
	m, err := NewMaintenanceRequest(uuid.New(), uuid.New(), CategoryPlumbing, PriorityHigh,
		"Kitchen sink leaking", "Water pooling under the cabinet", nil)
	require.NoError(t, err)
	return m
}

func TestNewMaintenanceRequest_Validation(t *testing.T) {
	propertyID, tenantID := uuid.New(), uuid.New()

	_, err := NewMaintenanceRequest(propertyID, tenantID, CategoryPlumbing, PriorityHigh, "", "desc", nil)
	require.ErrorIs(t, err, ErrValidation)
	_, err = NewMaintenanceRequest(propertyID, tenantID, CategoryPlumbing, PriorityHigh, "title", "", nil)
	require.ErrorIs(t, err, ErrValidation)
	_, err = NewMaintenanceRequest(propertyID, tenantID, MaintenanceCategory("painting"), PriorityHigh, "title", "desc", nil)
	require.ErrorIs(t, err, ErrValidation)
	_, err = NewMaintenanceRequest(propertyID, tenantID, CategoryPlumbing, MaintenancePriority("asap"), "title", "desc", nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestMaintenanceTransitions(t *testing.T) {
	tests := []struct {
		from    MaintenanceStatus
		to      MaintenanceStatus
		allowed bool
	}{
		{MaintenanceNew, MaintenanceInProgress, true},
		{MaintenanceNew, MaintenanceCompleted, false},
		{MaintenanceInProgress, MaintenancePendingApproval, true},
		{MaintenanceInProgress, MaintenanceCompleted, true},
		{MaintenanceInProgress, MaintenanceNew, false},
		{MaintenancePendingApproval, MaintenanceCompleted, true},
		{MaintenancePendingApproval, MaintenanceInProgress, false},
		{MaintenanceCompleted, MaintenanceNew, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestMaintenanceRequest_PendingApprovalRequiresCost(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	m := testMaintenanceRequest(t)

	require.NoError(t, m.Transition(MaintenanceInProgress, now))
	require.ErrorIs(t, m.Transition(MaintenancePendingApproval, now), ErrValidation)

	cost := int64(450)
	m.Cost = &cost
	require.NoError(t, m.Transition(MaintenancePendingApproval, now))
}

func TestMaintenanceRequest_CompletedStampsResolvedAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	m := testMaintenanceRequest(t)

	require.NoError(t, m.Transition(MaintenanceInProgress, now))
	require.Nil(t, m.ResolvedAt)

	require.NoError(t, m.Transition(MaintenanceCompleted, now))
	require.NotNil(t, m.ResolvedAt)
	require.Equal(t, now, *m.ResolvedAt)
}
