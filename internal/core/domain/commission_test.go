package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewCommission_Amount(t *testing.T) {
	closed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		dealValue int64
		rate      string
		want      string
	}{
		{"five percent", 95000, "5", "4750"},
		{"fractional rate", 95000, "2.5", "2375"},
		{"exact fils kept", 99999, "5", "4999.95"},
		{"rounds to fils", 99999, "3.333", "3332.97"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			require.NoError(t, err)

			co, err := NewCommission(uuid.New(), uuid.New(), tt.dealValue, rate, closed)
			require.NoError(t, err)
			require.Equal(t, CommissionPending, co.Status)
			require.True(t, co.CommissionAmount.Equal(decimal.RequireFromString(tt.want)),
				"got %s", co.CommissionAmount)
		})
	}
}

func TestNewCommission_Validation(t *testing.T) {
	closed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewCommission(uuid.New(), uuid.New(), 0, decimal.NewFromInt(5), closed)
	require.ErrorIs(t, err, ErrValidation)
	_, err = NewCommission(uuid.New(), uuid.New(), 95000, decimal.NewFromInt(-1), closed)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCommissionTransitions(t *testing.T) {
	tests := []struct {
		from    CommissionStatus
		to      CommissionStatus
		allowed bool
	}{
		{CommissionPending, CommissionApproved, true},
		{CommissionPending, CommissionDisputed, true},
		{CommissionPending, CommissionPaid, false},
		{CommissionApproved, CommissionPaid, true},
		{CommissionApproved, CommissionDisputed, true},
		{CommissionApproved, CommissionPending, false},
		{CommissionPaid, CommissionDisputed, false},
		{CommissionDisputed, CommissionApproved, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestCommission_PaidStampsDate(t *testing.T) {
	closed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	co, err := NewCommission(uuid.New(), uuid.New(), 95000, decimal.NewFromInt(5), closed)
	require.NoError(t, err)

	now := time.Date(2025, 7, 10, 15, 30, 0, 0, time.UTC)
	require.NoError(t, co.Transition(CommissionApproved, now))
	require.Nil(t, co.PaidDate)

	require.NoError(t, co.Transition(CommissionPaid, now))
	require.NotNil(t, co.PaidDate)
	require.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), *co.PaidDate)
}
