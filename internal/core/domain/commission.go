package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionStatus: pending -> approved -> paid; disputed is reachable from
// pending or approved and is terminal.
type CommissionStatus string

const (
	CommissionPending  CommissionStatus = "pending"
	CommissionApproved CommissionStatus = "approved"
	CommissionPaid     CommissionStatus = "paid"
	CommissionDisputed CommissionStatus = "disputed"
)

// ValidCommissionStatus reports whether s is a known commission status.
func ValidCommissionStatus(s string) bool {
	switch CommissionStatus(s) {
	case CommissionPending, CommissionApproved, CommissionPaid, CommissionDisputed:
		return true
	}
	return false
}

var commissionTransitions = map[CommissionStatus][]CommissionStatus{
	CommissionPending:  {CommissionApproved, CommissionDisputed},
	CommissionApproved: {CommissionPaid, CommissionDisputed},
	CommissionPaid:     {},
	CommissionDisputed: {},
}

// CanTransitionTo reports whether the status may move forward to next.
func (s CommissionStatus) CanTransitionTo(next CommissionStatus) bool {
	for _, allowed := range commissionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Commission is the agent's bookkeeping record for a closed deal. It is
// created automatically when a contract is signed, never by hand.
type Commission struct {
	ID                  uuid.UUID
	ContractID          uuid.UUID
	AgentID             uuid.UUID
	DealValue           int64
	CommissionRate      decimal.Decimal // percent, e.g. 5
	CommissionAmount    decimal.Decimal // AED, 2 decimal places
	Status              CommissionStatus
	ClosedDate          time.Time
	ExpectedPaymentDate *time.Time
	PaidDate            *time.Time
	CreatedAt           time.Time

	// Denormalized for list responses.
	PropertyTitle string
	PropertyArea  string
	TenantName    string
}

// NewCommission computes the commission amount from the deal value and rate,
// rounded to fils.
func NewCommission(contractID, agentID uuid.UUID, dealValue int64, rate decimal.Decimal, closedDate time.Time) (*Commission, error) {
	if dealValue <= 0 || rate.IsNegative() {
		return nil, ErrValidation
	}
	amount := decimal.NewFromInt(dealValue).Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	return &Commission{
		ID:               uuid.New(),
		ContractID:       contractID,
		AgentID:          agentID,
		DealValue:        dealValue,
		CommissionRate:   rate,
		CommissionAmount: amount,
		Status:           CommissionPending,
		ClosedDate:       closedDate.UTC().Truncate(24 * time.Hour),
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Transition moves the commission forward. Paying stamps PaidDate.
func (c *Commission) Transition(next CommissionStatus, now time.Time) error {
	if c.Status == next {
		return nil
	}
	if !c.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	c.Status = next
	if next == CommissionPaid {
		t := now.UTC().Truncate(24 * time.Hour)
		c.PaidDate = &t
	}
	return nil
}
