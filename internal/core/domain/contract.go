package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// ContractStatus moves strictly forward: draft -> pending_signature ->
// signed. Expired and cancelled are terminal; nothing regresses.
type ContractStatus string

const (
	ContractDraft            ContractStatus = "draft"
	ContractPendingSignature ContractStatus = "pending_signature"
	ContractSigned           ContractStatus = "signed"
	ContractExpired          ContractStatus = "expired"
	ContractCancelled        ContractStatus = "cancelled"
)

// ValidContractStatus reports whether s is a known contract status.
func ValidContractStatus(s string) bool {
	switch ContractStatus(s) {
	case ContractDraft, ContractPendingSignature, ContractSigned, ContractExpired, ContractCancelled:
		return true
	}
	return false
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractDraft:            {ContractPendingSignature, ContractCancelled},
	ContractPendingSignature: {ContractSigned, ContractCancelled},
	ContractSigned:           {ContractExpired},
	ContractExpired:          {},
	ContractCancelled:        {},
}

// CanTransitionTo reports whether the status may move forward to next.
func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	for _, allowed := range contractTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s ContractStatus) Terminal() bool {
	return len(contractTransitions[s]) == 0
}

// Contract is a lease agreement. ApplicationID links the approved tenant
// application the contract originated from, when there is one.
type Contract struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	ApplicationID *uuid.UUID
	AgentID       *uuid.UUID
	TenantName    string
	TenantEmail   string
	TenantPhone   string
	StartDate     time.Time // calendar date
	EndDate       time.Time // calendar date
	Rent          int64
	Cheques       int
	Deposit       int64
	Status        ContractStatus
	SignedAt      *time.Time
	PdfURL        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Denormalized for list responses.
	PropertyTitle string
}

// DefaultEndDate is start date plus one year minus one day, the standard
// annual tenancy term.
func DefaultEndDate(startDate time.Time) time.Time {
	return startDate.AddDate(1, 0, 0).AddDate(0, 0, -1)
}

// NewContract creates a draft contract. A zero endDate defaults to the
// one-year term; rent, cheques and deposit are copied from the property
// when left at zero.
func NewContract(property *Property, tenantName, tenantEmail, tenantPhone string,
	startDate, endDate time.Time, rent int64, cheques int, deposit int64, applicationID *uuid.UUID) (*Contract, error) {

	if tenantName == "" || startDate.IsZero() {
		return nil, ErrValidation
	}

	startDate = startDate.UTC().Truncate(24 * time.Hour)
	if endDate.IsZero() {
		endDate = DefaultEndDate(startDate)
	} else {
		endDate = endDate.UTC().Truncate(24 * time.Hour)
	}
	if !endDate.After(startDate) {
		return nil, ErrValidation
	}

	if rent == 0 {
		rent = property.Rent
	}
	if cheques == 0 {
		cheques = property.Cheques
	}
	if deposit == 0 {
		deposit = property.Deposit
	}
	if rent <= 0 || cheques < 1 || cheques > 12 || deposit < 0 {
		return nil, ErrValidation
	}

	now := time.Now().UTC()
	return &Contract{
		ID:            uuid.New(),
		PropertyID:    property.ID,
		ApplicationID: applicationID,
		AgentID:       property.AgentID,
		TenantName:    tenantName,
		TenantEmail:   tenantEmail,
		TenantPhone:   tenantPhone,
		StartDate:     startDate,
		EndDate:       endDate,
		Rent:          rent,
		Cheques:       cheques,
		Deposit:       deposit,
		Status:        ContractDraft,
		PropertyTitle: property.Title,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Transition moves the contract to the next status, enforcing the
// forward-only path.
func (c *Contract) Transition(next ContractStatus) error {
	if c.Status == next {
		return nil
	}
	if !c.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	c.Status = next
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Sign finalizes the contract after a successful OTP verification.
func (c *Contract) Sign(now time.Time) error {
	if err := c.Transition(ContractSigned); err != nil {
		return err
	}
	t := now.UTC()
	c.SignedAt = &t
	return nil
}

// Signature-session parameters.
const (
	otpLength      = 6
	OTPSessionTTL  = 10 * time.Minute
	OTPMaxAttempts = 3
)

// SignatureSession is one OTP round for signing a contract. Requesting a new
// code invalidates the previous session.
type SignatureSession struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	Code       string
	ExpiresAt  time.Time
	Attempts   int
	CreatedAt  time.Time
}

// NewSignatureSession issues a fresh 6-digit code valid for OTPSessionTTL.
func NewSignatureSession(contractID uuid.UUID, now time.Time) (*SignatureSession, error) {
	code, err := randomDigits(otpLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	now = now.UTC()
	return &SignatureSession{
		ID:         uuid.New(),
		ContractID: contractID,
		Code:       code,
		ExpiresAt:  now.Add(OTPSessionTTL),
		CreatedAt:  now,
	}, nil
}

// Verify checks the submitted code. A wrong code consumes one attempt; the
// session errors permanently once attempts are exhausted or the code expired.
func (s *SignatureSession) Verify(code string, now time.Time) error {
	if now.UTC().After(s.ExpiresAt) {
		return ErrOTPExpired
	}
	if s.Attempts >= OTPMaxAttempts {
		return ErrOTPAttemptsExceeded
	}
	if s.Code != code {
		s.Attempts++
		if s.Attempts >= OTPMaxAttempts {
			return ErrOTPAttemptsExceeded
		}
		return ErrOTPCodeMismatch
	}
	return nil
}

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
