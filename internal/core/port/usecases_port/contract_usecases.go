package usecases_port

import (
	"context"
	"time"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

// CreateContractInput carries a draft contract request. Zero EndDate, Rent,
// Cheques and Deposit default from the property and the standard one-year
// term.
type CreateContractInput struct {
	PropertyID  uuid.UUID
	TenantName  string
	TenantEmail string
	TenantPhone string
	StartDate   time.Time
	EndDate     time.Time
	Rent        int64
	Cheques     int
	Deposit     int64
}

// ContractPatch holds the fields editable while a contract is still a
// draft or pending signature.
type ContractPatch struct {
	TenantName  *string
	TenantEmail *string
	TenantPhone *string
	StartDate   *time.Time
	EndDate     *time.Time
	Rent        *int64
	Cheques     *int
	Deposit     *int64
	Status      *string
}

type CreateContractUseCasePort interface {
	Execute(ctx context.Context, input CreateContractInput) (*domain.Contract, error)
}

type ListContractsUseCasePort interface {
	Execute(ctx context.Context, filter port.ContractFilter) ([]*domain.Contract, error)
}

type GetContractUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
}

type UpdateContractUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, patch ContractPatch) (*domain.Contract, error)
}

// SendSignatureOTPUseCasePort opens (or reopens) a signature session for the
// contract and hands the code to the delivery channel. Returns the session
// so the caller learns the expiry.
type SendSignatureOTPUseCasePort interface {
	Execute(ctx context.Context, contractID uuid.UUID) (*domain.SignatureSession, error)
}

// VerifySignatureOTPUseCasePort checks the submitted code and, on success,
// signs the contract with all side effects applied atomically.
type VerifySignatureOTPUseCasePort interface {
	Execute(ctx context.Context, contractID uuid.UUID, code string) (*domain.Contract, error)
}

// GenerateContractPDFUseCasePort renders the tenancy document and records
// its URL on the contract.
type GenerateContractPDFUseCasePort interface {
	Execute(ctx context.Context, contractID uuid.UUID) (*domain.Contract, []byte, error)
}
