package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"
)

type ListApplicationsUseCase struct {
	applicationRepo port.ApplicationRepositoryPort
}

func NewListApplicationsUseCase(applicationRepo port.ApplicationRepositoryPort) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{applicationRepo: applicationRepo}
}

func (uc *ListApplicationsUseCase) Execute(ctx context.Context, filter port.ApplicationFilter) ([]*domain.Application, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListApplications"})

	applications, err := uc.applicationRepo.List(ctx, filter)
	if err != nil {
		ucLogger.Error("Repository failed to list applications", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	return applications, nil
}
