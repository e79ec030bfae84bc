package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type SendSignatureOTPUseCase struct {
	contractRepo port.ContractRepositoryPort
}

func NewSendSignatureOTPUseCase(contractRepo port.ContractRepositoryPort) *SendSignatureOTPUseCase {
	return &SendSignatureOTPUseCase{contractRepo: contractRepo}
}

// Execute issues a fresh signing code for a pending_signature contract. A
// draft is moved to pending_signature first. Re-sending invalidates any
// earlier code.
func (uc *SendSignatureOTPUseCase) Execute(ctx context.Context, contractID uuid.UUID) (*domain.SignatureSession, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "SendSignatureOTP", "contract_id": contractID.String()})
	ucLogger.Info("Use case started: issuing signature code", nil)

	contract, err := uc.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		ucLogger.Error("Repository failed to find contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if contract == nil {
		ucLogger.Warn("Contract not found", nil)
		return nil, domain.ErrContractNotFound
	}

	if contract.Status == domain.ContractDraft {
		if err := contract.Transition(domain.ContractPendingSignature); err != nil {
			return nil, err
		}
		if err := uc.contractRepo.Update(ctx, contract); err != nil {
			ucLogger.Error("Repository failed to update contract", err, nil)
			return nil, fmt.Errorf("internal server error: %w", err)
		}
	}
	if contract.Status != domain.ContractPendingSignature {
		ucLogger.Warn("OTP rejected: contract is not awaiting signature", port.Fields{"status": string(contract.Status)})
		return nil, domain.ErrInvalidTransition
	}

	session, err := domain.NewSignatureSession(contract.ID, time.Now().UTC())
	if err != nil {
		ucLogger.Error("Failed to create signature session", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	if err := uc.contractRepo.ReplaceSignatureSession(ctx, session); err != nil {
		ucLogger.Error("Repository failed to store signature session", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	// The SMS gateway is out of scope; operators read the code from the log.
	ucLogger.Info("Signature code issued", port.Fields{
		"tenant_phone": contract.TenantPhone,
		"code":         session.Code,
		"expires_at":   session.ExpiresAt.Format(time.RFC3339),
	})

	ucLogger.Info("Use case finished: signature session opened", nil)
	return session, nil
}
