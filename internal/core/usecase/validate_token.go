package usecase

import (
	"context"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	return uc.tokenSvc.ValidateToken(ctx, token)
}
