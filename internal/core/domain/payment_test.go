package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSignedContract(t *testing.T, rent int64, cheques int) *Contract {
	t.Helper()
	p := testProperty(t)
	c, err := NewContract(p, "Aisha Khan", "", "",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Time{}, rent, cheques, 5000, nil)
	require.NoError(t, err)
	return c
}

func TestBuildChequeSchedule_SumsToRent(t *testing.T) {
	tests := []struct {
		name    string
		rent    int64
		cheques int
	}{
		{"even split", 96000, 4},
		{"remainder on first cheque", 100000, 3},
		{"single cheque", 85000, 1},
		{"monthly", 95000, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testSignedContract(t, tt.rent, tt.cheques)
			schedule := BuildChequeSchedule(c)
			require.Len(t, schedule, tt.cheques)

			var total int64
			for i, cheque := range schedule {
				total += cheque.Amount
				require.Equal(t, i+1, cheque.ChequeNumber)
				require.Equal(t, tt.cheques, cheque.TotalCheques)
				require.Equal(t, c.ID, cheque.ContractID)
			}
			require.Equal(t, tt.rent, total)

			// Any rounding remainder lands on cheque one.
			if tt.cheques > 1 {
				require.GreaterOrEqual(t, schedule[0].Amount, schedule[1].Amount)
			}
		})
	}
}

func TestBuildChequeSchedule_DueDates(t *testing.T) {
	c := testSignedContract(t, 96000, 4)
	schedule := BuildChequeSchedule(c)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, start, schedule[0].DueDate)
	require.Equal(t, start.AddDate(0, 3, 0), schedule[1].DueDate)
	require.Equal(t, start.AddDate(0, 6, 0), schedule[2].DueDate)
	require.Equal(t, start.AddDate(0, 9, 0), schedule[3].DueDate)
}

func TestChequePayment_Status(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	paidAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		due    time.Time
		paidAt *time.Time
		want   ChequeStatus
	}{
		{"paid", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), &paidAt, ChequePaid},
		{"overdue", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), nil, ChequeOverdue},
		{"due today is upcoming", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), nil, ChequeUpcoming},
		{"future", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), nil, ChequeUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cheque := &ChequePayment{DueDate: tt.due, PaidAt: tt.paidAt}
			require.Equal(t, tt.want, cheque.Status(now))
		})
	}
}

func TestChequePayment_MarkPaid(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	cheque := &ChequePayment{DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, cheque.MarkPaid("bank_transfer", now))
	require.Equal(t, "bank_transfer", cheque.PaidMethod)
	require.Equal(t, ChequePaid, cheque.Status(now))

	require.ErrorIs(t, cheque.MarkPaid("cash", now), ErrChequeAlreadyPaid)
}
