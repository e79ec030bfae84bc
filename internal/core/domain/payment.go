package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChequeStatus is never stored. It is derived per read: paid if PaidAt is
// set, overdue when the due date has passed unpaid, upcoming otherwise.
type ChequeStatus string

const (
	ChequePaid     ChequeStatus = "paid"
	ChequeUpcoming ChequeStatus = "upcoming"
	ChequeOverdue  ChequeStatus = "overdue"
)

// ChequePayment is one rent installment of a signed contract.
type ChequePayment struct {
	ID           uuid.UUID
	ContractID   uuid.UUID
	ChequeNumber int // 1-based
	TotalCheques int
	Amount       int64
	DueDate      time.Time // calendar date
	PaidAt       *time.Time
	PaidMethod   string
	CreatedAt    time.Time
}

// Status derives the cheque state at the given moment.
func (c *ChequePayment) Status(now time.Time) ChequeStatus {
	if c.PaidAt != nil {
		return ChequePaid
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if c.DueDate.Before(today) {
		return ChequeOverdue
	}
	return ChequeUpcoming
}

// MarkPaid records payment. Paying an already-paid cheque is a conflict.
func (c *ChequePayment) MarkPaid(method string, now time.Time) error {
	if c.PaidAt != nil {
		return ErrChequeAlreadyPaid
	}
	t := now.UTC()
	c.PaidAt = &t
	c.PaidMethod = method
	return nil
}

// BuildChequeSchedule splits the contract's annual rent into its cheque
// installments. Amounts sum exactly to the rent with the division remainder
// on the first cheque; due dates are spread evenly across the contract year
// starting on the start date.
func BuildChequeSchedule(contract *Contract) []*ChequePayment {
	n := contract.Cheques
	base := contract.Rent / int64(n)
	remainder := contract.Rent - base*int64(n)
	now := time.Now().UTC()

	cheques := make([]*ChequePayment, 0, n)
	for i := 0; i < n; i++ {
		amount := base
		if i == 0 {
			amount += remainder
		}
		cheques = append(cheques, &ChequePayment{
			ID:           uuid.New(),
			ContractID:   contract.ID,
			ChequeNumber: i + 1,
			TotalCheques: n,
			Amount:       amount,
			DueDate:      contract.StartDate.AddDate(0, i*12/n, 0),
			CreatedAt:    now,
		})
	}
	return cheques
}
