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

type DecideApplicationUseCase struct {
	applicationRepo port.ApplicationRepositoryPort
	propertyRepo    port.PropertyRepositoryPort
	userRepo        port.UserRepositoryPort
	publisher       port.EventPublisherPort
}

func NewDecideApplicationUseCase(applicationRepo port.ApplicationRepositoryPort, propertyRepo port.PropertyRepositoryPort,
	userRepo port.UserRepositoryPort, publisher port.EventPublisherPort) *DecideApplicationUseCase {
	return &DecideApplicationUseCase{
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		publisher:       publisher,
	}
}

// Execute settles a pending application. Withdrawal is reserved for the
// applicant; approve and reject belong to agents and owners. An approval
// reserves the property and opens a draft contract linked back to the
// application, all in one transaction.
func (uc *DecideApplicationUseCase) Execute(ctx context.Context, id uuid.UUID, decision domain.ApplicationStatus,
	actor domain.Claims) (*domain.Application, *domain.Contract, error) {

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "DecideApplication",
		"application_id": id.String(),
		"decision":       string(decision),
	})
	ucLogger.Info("Use case started: deciding application", nil)

	application, err := uc.applicationRepo.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository failed to find application", err, nil)
		return nil, nil, fmt.Errorf("internal server error: %w", err)
	}
	if application == nil {
		ucLogger.Warn("Application not found", nil)
		return nil, nil, domain.ErrApplicationNotFound
	}

	switch decision {
	case domain.ApplicationWithdrawn:
		if actor.UserID != application.TenantID {
			ucLogger.Warn("Decision rejected: only the applicant may withdraw", nil)
			return nil, nil, domain.ErrForbidden
		}
	case domain.ApplicationApproved, domain.ApplicationRejected:
		if actor.Role == domain.RoleTenant {
			ucLogger.Warn("Decision rejected: tenants cannot approve or reject", nil)
			return nil, nil, domain.ErrForbidden
		}
	default:
		return nil, nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	if err := application.Decide(decision, now); err != nil {
		ucLogger.Warn("Decision rejected: application already settled", port.Fields{"status": string(application.Status)})
		return nil, nil, err
	}

	var contract *domain.Contract
	if decision == domain.ApplicationApproved {
		property, err := uc.propertyRepo.FindByID(ctx, application.PropertyID)
		if err != nil {
			ucLogger.Error("Repository failed to find property", err, nil)
			return nil, nil, fmt.Errorf("internal server error: %w", err)
		}
		if property == nil {
			ucLogger.Warn("Property not found", nil)
			return nil, nil, domain.ErrPropertyNotFound
		}

		tenant, err := uc.userRepo.FindByID(ctx, application.TenantID)
		if err != nil {
			ucLogger.Error("Repository failed to find applicant", err, nil)
			return nil, nil, fmt.Errorf("internal server error: %w", err)
		}
		if tenant == nil {
			ucLogger.Warn("Applicant not found", nil)
			return nil, nil, domain.ErrUserNotFound
		}

		if err := property.Transition(domain.PropertyReserved); err != nil {
			ucLogger.Warn("Approval rejected: property cannot be reserved", port.Fields{"status": string(property.Status)})
			return nil, nil, err
		}

		appID := application.ID
		contract, err = domain.NewContract(property, tenant.Name, tenant.Email, tenant.Phone,
			now, time.Time{}, 0, 0, 0, &appID)
		if err != nil {
			ucLogger.Error("Failed to build draft contract", err, nil)
			return nil, nil, fmt.Errorf("internal server error: %w", err)
		}

		if err := uc.applicationRepo.Approve(ctx, application, contract, property); err != nil {
			ucLogger.Error("Repository failed to apply approval transaction", err, nil)
			return nil, nil, fmt.Errorf("internal server error: %w", err)
		}
		ucLogger = ucLogger.WithFields(port.Fields{"contract_id": contract.ID.String()})
	} else {
		if err := uc.applicationRepo.Update(ctx, application); err != nil {
			ucLogger.Error("Repository failed to update application", err, nil)
			return nil, nil, fmt.Errorf("internal server error: %w", err)
		}
	}

	event := port.DomainEvent{
		Type:       port.EventApplicationDecided,
		UserID:     application.TenantID,
		OccurredAt: now,
		Payload: map[string]interface{}{
			"application_id": application.ID.String(),
			"property_id":    application.PropertyID.String(),
			"decision":       string(decision),
		},
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		ucLogger.Warn("Failed to publish application.decided event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished: application decided", nil)
	return application, contract, nil
}
