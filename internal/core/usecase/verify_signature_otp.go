package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VerifySignatureOTPUseCase struct {
	contractRepo   port.ContractRepositoryPort
	propertyRepo   port.PropertyRepositoryPort
	publisher      port.EventPublisherPort
	commissionRate decimal.Decimal
}

func NewVerifySignatureOTPUseCase(contractRepo port.ContractRepositoryPort, propertyRepo port.PropertyRepositoryPort,
	publisher port.EventPublisherPort, commissionRate decimal.Decimal) *VerifySignatureOTPUseCase {
	return &VerifySignatureOTPUseCase{
		contractRepo:   contractRepo,
		propertyRepo:   propertyRepo,
		publisher:      publisher,
		commissionRate: commissionRate,
	}
}

// Execute checks the submitted code against the contract's open signature
// session and, on a match, signs the contract. Signing marks the property
// rented, lays down the cheque schedule and books the agent's commission in
// one transaction.
func (uc *VerifySignatureOTPUseCase) Execute(ctx context.Context, contractID uuid.UUID, code string) (*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "VerifySignatureOTP", "contract_id": contractID.String()})
	ucLogger.Info("Use case started: verifying signature code", nil)

	contract, err := uc.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		ucLogger.Error("Repository failed to find contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if contract == nil {
		ucLogger.Warn("Contract not found", nil)
		return nil, domain.ErrContractNotFound
	}
	if contract.Status != domain.ContractPendingSignature {
		ucLogger.Warn("Verification rejected: contract is not awaiting signature", port.Fields{"status": string(contract.Status)})
		return nil, domain.ErrInvalidTransition
	}

	session, err := uc.contractRepo.FindSignatureSession(ctx, contractID)
	if err != nil {
		ucLogger.Error("Repository failed to find signature session", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if session == nil {
		ucLogger.Warn("No open signature session", nil)
		return nil, domain.ErrOTPSessionNotFound
	}

	now := time.Now().UTC()
	if err := session.Verify(code, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPExpired):
			ucLogger.Warn("Verification failed: code expired", nil)
		case errors.Is(err, domain.ErrOTPAttemptsExceeded):
			ucLogger.Warn("Verification failed: attempts exhausted", nil)
		default:
			ucLogger.Warn("Verification failed: code mismatch", port.Fields{"attempts": session.Attempts})
		}
		if uErr := uc.contractRepo.UpdateSignatureSession(ctx, session); uErr != nil {
			ucLogger.Error("Repository failed to persist attempt count", uErr, nil)
		}
		return nil, err
	}

	property, err := uc.propertyRepo.FindByID(ctx, contract.PropertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Error("Contract references a missing property", nil, nil)
		return nil, domain.ErrPropertyNotFound
	}

	if err := contract.Sign(now); err != nil {
		return nil, err
	}
	if err := property.Transition(domain.PropertyRented); err != nil {
		ucLogger.Warn("Signing rejected: property cannot move to rented", port.Fields{"status": string(property.Status)})
		return nil, err
	}

	cheques := domain.BuildChequeSchedule(contract)

	var commission *domain.Commission
	if contract.AgentID != nil {
		commission, err = domain.NewCommission(contract.ID, *contract.AgentID, contract.Rent, uc.commissionRate, now)
		if err != nil {
			ucLogger.Error("Failed to build commission record", err, nil)
			return nil, fmt.Errorf("internal server error: %w", err)
		}
	}

	if err := uc.contractRepo.Sign(ctx, contract, property, cheques, commission); err != nil {
		ucLogger.Error("Repository failed to apply signing transaction", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	if err := uc.contractRepo.DeleteSignatureSession(ctx, contractID); err != nil {
		ucLogger.Warn("Failed to discard used signature session", port.Fields{"error": err.Error()})
	}

	event := port.DomainEvent{
		Type:       port.EventContractSigned,
		UserID:     property.OwnerID,
		OccurredAt: now,
		Payload: map[string]interface{}{
			"contract_id": contract.ID.String(),
			"property_id": property.ID.String(),
			"tenant_name": contract.TenantName,
			"rent":        contract.Rent,
		},
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		ucLogger.Warn("Failed to publish contract.signed event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished: contract signed", port.Fields{"cheques": len(cheques)})
	return contract, nil
}
