package usecase

import (
	"context"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

type SubmitApplicationUseCase struct {
	applicationRepo port.ApplicationRepositoryPort
	propertyRepo    port.PropertyRepositoryPort
	userRepo        port.UserRepositoryPort
}

func NewSubmitApplicationUseCase(applicationRepo port.ApplicationRepositoryPort, propertyRepo port.PropertyRepositoryPort, userRepo port.UserRepositoryPort) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
	}
}

func (uc *SubmitApplicationUseCase) Execute(ctx context.Context, propertyID, tenantID uuid.UUID, notes string) (*domain.Application, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "SubmitApplication",
		"property_id": propertyID.String(),
		"tenant_id":   tenantID.String(),
	})
	ucLogger.Info("Use case started: submitting application", nil)

	property, err := uc.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Repository failed to find property", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	tenant, err := uc.userRepo.FindByID(ctx, tenantID)
	if err != nil {
		ucLogger.Error("Repository failed to find tenant", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if tenant == nil {
		ucLogger.Warn("Tenant not found", nil)
		return nil, domain.ErrUserNotFound
	}

	application := domain.NewApplication(propertyID, tenantID, notes)
	application.PropertyTitle = property.Title
	application.PropertyArea = property.Area
	if len(property.Images) > 0 {
		application.PropertyImage = property.Images[0]
	}
	application.Rent = property.Rent

	ucLogger = ucLogger.WithFields(port.Fields{"application_id": application.ID.String()})

	if err := uc.applicationRepo.Create(ctx, application); err != nil {
		ucLogger.Error("Repository failed to create application", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: application submitted", nil)
	return application, nil
}
