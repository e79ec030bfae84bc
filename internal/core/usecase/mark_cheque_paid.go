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
)

type MarkChequePaidUseCase struct {
	paymentRepo port.PaymentRepositoryPort
}

func NewMarkChequePaidUseCase(paymentRepo port.PaymentRepositoryPort) *MarkChequePaidUseCase {
	return &MarkChequePaidUseCase{paymentRepo: paymentRepo}
}

func (uc *MarkChequePaidUseCase) Execute(ctx context.Context, chequeID uuid.UUID, method string) (*domain.ChequePayment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "MarkChequePaid",
		"cheque_id": chequeID.String(),
		"method":    method,
	})
	ucLogger.Info("Use case started: marking cheque paid", nil)

	cheque, err := uc.paymentRepo.FindByID(ctx, chequeID)
	if err != nil {
		ucLogger.Error("Repository failed to find cheque", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if cheque == nil {
		ucLogger.Warn("Cheque not found", nil)
		return nil, domain.ErrChequeNotFound
	}

	if err := cheque.MarkPaid(method, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrChequeAlreadyPaid) {
			ucLogger.Warn("Mark paid rejected: cheque already paid", nil)
		}
		return nil, err
	}

	if err := uc.paymentRepo.Update(ctx, cheque); err != nil {
		ucLogger.Error("Repository failed to update cheque", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: cheque marked paid", nil)
	return cheque, nil
}
