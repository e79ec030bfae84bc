package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testProperty(t *testing.T) *Property {
	t.Helper()
	p, err := NewProperty(uuid.New(), nil, "Marina View 1BR", "Marina Gate", "1204", "Dubai Marina",
		TypeApartment, 1, 2, 850, 95000, 4, 5000, nil)
	require.NoError(t, err)
	return p
}

func TestDefaultEndDate(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := DefaultEndDate(start)
	require.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), end)
}

func TestNewContract_Defaults(t *testing.T) {
	p := testProperty(t)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	c, err := NewContract(p, "Aisha Khan", "aisha@example.com", "+971501234567",
		start, time.Time{}, 0, 0, 0, nil)
	require.NoError(t, err)

	require.Equal(t, ContractDraft, c.Status)
	require.Equal(t, DefaultEndDate(start), c.EndDate)
	require.Equal(t, p.Rent, c.Rent)
	require.Equal(t, p.Cheques, c.Cheques)
	require.Equal(t, p.Deposit, c.Deposit)
	require.Equal(t, p.Title, c.PropertyTitle)
	require.Nil(t, c.SignedAt)
}

func TestNewContract_Validation(t *testing.T) {
	p := testProperty(t)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		tenantName string
		start      time.Time
		end        time.Time
		cheques    int
	}{
		{"missing tenant name", "", start, time.Time{}, 0},
		{"zero start date", "Aisha Khan", time.Time{}, time.Time{}, 0},
		{"end before start", "Aisha Khan", start, start.AddDate(0, -1, 0), 0},
		{"end equals start", "Aisha Khan", start, start, 0},
		{"too many cheques", "Aisha Khan", start, time.Time{}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContract(p, tt.tenantName, "", "", tt.start, tt.end, 0, tt.cheques, 0, nil)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestContractTransitions(t *testing.T) {
	tests := []struct {
		from    ContractStatus
		to      ContractStatus
		allowed bool
	}{
		{ContractDraft, ContractPendingSignature, true},
		{ContractDraft, ContractCancelled, true},
		{ContractDraft, ContractSigned, false},
		{ContractPendingSignature, ContractSigned, true},
		{ContractPendingSignature, ContractCancelled, true},
		{ContractPendingSignature, ContractDraft, false},
		{ContractSigned, ContractExpired, true},
		{ContractSigned, ContractCancelled, false},
		{ContractExpired, ContractSigned, false},
		{ContractCancelled, ContractDraft, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestContract_Sign(t *testing.T) {
	p := testProperty(t)
	c, err := NewContract(p, "Aisha Khan", "", "",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0, nil)
	require.NoError(t, err)

	require.ErrorIs(t, c.Sign(time.Now()), ErrInvalidTransition)

	require.NoError(t, c.Transition(ContractPendingSignature))
	signedAt := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.Sign(signedAt))
	require.Equal(t, ContractSigned, c.Status)
	require.NotNil(t, c.SignedAt)
	require.Equal(t, signedAt, *c.SignedAt)
}

func TestSignatureSession_Verify(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s, err := NewSignatureSession(uuid.New(), now)
	require.NoError(t, err)
	require.Len(t, s.Code, 6)
	require.Equal(t, now.Add(OTPSessionTTL), s.ExpiresAt)

	require.NoError(t, s.Verify(s.Code, now.Add(time.Minute)))
}

func TestSignatureSession_WrongCodeConsumesAttempts(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s, err := NewSignatureSession(uuid.New(), now)
	require.NoError(t, err)

	require.ErrorIs(t, s.Verify("000000x", now), ErrOTPCodeMismatch)
	require.Equal(t, 1, s.Attempts)
	require.ErrorIs(t, s.Verify("000000x", now), ErrOTPCodeMismatch)
	require.ErrorIs(t, s.Verify("000000x", now), ErrOTPAttemptsExceeded)

	// Even the right code is rejected once attempts are exhausted.
	require.ErrorIs(t, s.Verify(s.Code, now), ErrOTPAttemptsExceeded)
}

func TestSignatureSession_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s, err := NewSignatureSession(uuid.New(), now)
	require.NoError(t, err)

	require.ErrorIs(t, s.Verify(s.Code, now.Add(OTPSessionTTL+time.Second)), ErrOTPExpired)
}
