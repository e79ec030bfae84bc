package port

import (
	"context"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// ContractFilter narrows List results.
type ContractFilter struct {
	Status     *domain.ContractStatus
	PropertyID *uuid.UUID
	AgentID    *uuid.UUID
	Limit      int
	Offset     int
}

// ContractRepositoryPort persists lease agreements and their signing
// sessions. FindByID returns (nil, nil) when no row matches.
type ContractRepositoryPort interface {
	Create(ctx context.Context, contract *domain.Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	// FindActiveByProperty returns the property's non-terminal contract,
	// or (nil, nil) when there is none.
	FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) (*domain.Contract, error)

	// ReplaceSignatureSession stores a fresh session, invalidating any
	// previous one for the contract.
	ReplaceSignatureSession(ctx context.Context, session *domain.SignatureSession) error
	// FindSignatureSession returns the contract's current session, or
	// (nil, nil) when none exists.
	FindSignatureSession(ctx context.Context, contractID uuid.UUID) (*domain.SignatureSession, error)
	UpdateSignatureSession(ctx context.Context, session *domain.SignatureSession) error
	DeleteSignatureSession(ctx context.Context, contractID uuid.UUID) error

	// Sign applies the full signing result in one transaction: the signed
	// contract, the rented property, the cheque schedule and the agent's
	// commission (nil when the property has no agent).
	Sign(ctx context.Context, contract *domain.Contract, property *domain.Property,
		cheques []*domain.ChequePayment, commission *domain.Commission) error
}
