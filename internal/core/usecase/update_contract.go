package usecase

import (
	"context"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
	"dar360-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type UpdateContractUseCase struct {
	contractRepo port.ContractRepositoryPort
}

func NewUpdateContractUseCase(contractRepo port.ContractRepositoryPort) *UpdateContractUseCase {
	return &UpdateContractUseCase{contractRepo: contractRepo}
}

// Execute edits a contract. Terms are editable only while the contract is a
// draft; pending_signature allows a status move only. Signing itself goes
// through the OTP flow, never through this patch.
func (uc *UpdateContractUseCase) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.ContractPatch) (*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateContract", "contract_id": id.String()})
	ucLogger.Info("Use case started: updating contract", nil)

	contract, err := uc.contractRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if contract == nil {
		ucLogger.Warn("Contract not found", nil)
		return nil, domain.ErrContractNotFound
	}

	termsPatched := patch.TenantName != nil || patch.TenantEmail != nil || patch.TenantPhone != nil ||
		patch.StartDate != nil || patch.EndDate != nil || patch.Rent != nil || patch.Cheques != nil || patch.Deposit != nil
	if termsPatched && contract.Status != domain.ContractDraft {
		ucLogger.Warn("Update rejected: terms are frozen after draft", port.Fields{"status": string(contract.Status)})
		return nil, domain.ErrInvalidTransition
	}

	if patch.TenantName != nil {
		if *patch.TenantName == "" {
			return nil, domain.ErrValidation
		}
		contract.TenantName = *patch.TenantName
	}
	if patch.TenantEmail != nil {
		contract.TenantEmail = *patch.TenantEmail
	}
	if patch.TenantPhone != nil {
		contract.TenantPhone = *patch.TenantPhone
	}
	if patch.StartDate != nil {
		contract.StartDate = patch.StartDate.UTC().Truncate(24 * time.Hour)
	}
	if patch.EndDate != nil {
		contract.EndDate = patch.EndDate.UTC().Truncate(24 * time.Hour)
	}
	if !contract.EndDate.After(contract.StartDate) {
		return nil, domain.ErrValidation
	}
	if patch.Rent != nil {
		if *patch.Rent <= 0 {
			return nil, domain.ErrValidation
		}
		contract.Rent = *patch.Rent
	}
	if patch.Cheques != nil {
		if *patch.Cheques < 1 || *patch.Cheques > 12 {
			return nil, domain.ErrValidation
		}
		contract.Cheques = *patch.Cheques
	}
	if patch.Deposit != nil {
		if *patch.Deposit < 0 {
			return nil, domain.ErrValidation
		}
		contract.Deposit = *patch.Deposit
	}

	if patch.Status != nil {
		if !domain.ValidContractStatus(*patch.Status) {
			ucLogger.Warn("Update rejected: unknown contract status", port.Fields{"status": *patch.Status})
			return nil, domain.ErrValidation
		}
		next := domain.ContractStatus(*patch.Status)
		if next == domain.ContractSigned {
			ucLogger.Warn("Update rejected: signing requires OTP verification", nil)
			return nil, domain.ErrInvalidTransition
		}
		if err := contract.Transition(next); err != nil {
			ucLogger.Warn("Update rejected: invalid status transition", port.Fields{
				"from": string(contract.Status),
				"to":   *patch.Status,
			})
			return nil, err
		}
	}
	contract.UpdatedAt = time.Now().UTC()

	if err := uc.contractRepo.Update(ctx, contract); err != nil {
		ucLogger.Error("Repository failed to update contract", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: contract updated", nil)
	return contract, nil
}
