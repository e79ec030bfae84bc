package usecase

import (
	"context"
	"testing"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type decideFixture struct {
	uc              *DecideApplicationUseCase
	applicationRepo *fakeApplicationRepo
	propertyRepo    *fakePropertyRepo
	publisher       *fakePublisher

	application *domain.Application
	property    *domain.Property
	tenant      *domain.User
}

func newDecideFixture(t *testing.T) *decideFixture {
	t.Helper()

	applicationRepo := newFakeApplicationRepo()
	propertyRepo := newFakePropertyRepo()
	userRepo := newFakeUserRepo()
	publisher := &fakePublisher{}

	property, err := domain.NewProperty(uuid.New(), nil, "Marina View 1BR", "", "", "Dubai Marina",
		domain.TypeApartment, 1, 2, 850, 95000, 4, 5000, nil)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Create(context.Background(), property))

	tenant, err := domain.NewUser("tenant@dar360.ae", "pass-word", "Omar Ali", "+971500000001", domain.RoleTenant)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), tenant))

	application := domain.NewApplication(property.ID, tenant.ID, "prefers July move-in")
	require.NoError(t, applicationRepo.Create(context.Background(), application))

	return &decideFixture{
		uc:              NewDecideApplicationUseCase(applicationRepo, propertyRepo, userRepo, publisher),
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		publisher:       publisher,
		application:     application,
		property:        property,
		tenant:          tenant,
	}
}

func agentClaims() domain.Claims {
	return domain.Claims{UserID: uuid.New(), Email: "agent@dar360.ae", Role: domain.RoleAgent}
}

func TestDecideApplication_ApproveOpensDraftContract(t *testing.T) {
	f := newDecideFixture(t)

	application, contract, err := f.uc.Execute(context.Background(), f.application.ID,
		domain.ApplicationApproved, agentClaims())
	require.NoError(t, err)

	require.Equal(t, domain.ApplicationApproved, application.Status)
	require.NotNil(t, application.DecidedAt)

	require.NotNil(t, contract)
	require.Equal(t, domain.ContractDraft, contract.Status)
	require.Equal(t, f.property.ID, contract.PropertyID)
	require.Equal(t, f.tenant.Name, contract.TenantName)
	require.Equal(t, f.tenant.Email, contract.TenantEmail)
	require.NotNil(t, contract.ApplicationID)
	require.Equal(t, f.application.ID, *contract.ApplicationID)
	require.Equal(t, f.property.Rent, contract.Rent)

	// Approval and reservation land in the same repository transaction.
	require.Equal(t, domain.PropertyReserved, f.applicationRepo.approvedProperty.Status)
	require.Equal(t, contract, f.applicationRepo.approvedContract)

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, "application.decided", f.publisher.events[0].Type)
	require.Equal(t, f.tenant.ID, f.publisher.events[0].UserID)
}

func TestDecideApplication_RejectLeavesPropertyAlone(t *testing.T) {
	f := newDecideFixture(t)

	application, contract, err := f.uc.Execute(context.Background(), f.application.ID,
		domain.ApplicationRejected, agentClaims())
	require.NoError(t, err)

	require.Equal(t, domain.ApplicationRejected, application.Status)
	require.Nil(t, contract)
	require.Equal(t, domain.PropertyAvailable, f.property.Status)
}

func TestDecideApplication_TenantCannotApprove(t *testing.T) {
	f := newDecideFixture(t)

	tenantActor := domain.Claims{UserID: f.tenant.ID, Role: domain.RoleTenant}
	_, _, err := f.uc.Execute(context.Background(), f.application.ID, domain.ApplicationApproved, tenantActor)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDecideApplication_OnlyApplicantWithdraws(t *testing.T) {
	f := newDecideFixture(t)

	_, _, err := f.uc.Execute(context.Background(), f.application.ID, domain.ApplicationWithdrawn, agentClaims())
	require.ErrorIs(t, err, domain.ErrForbidden)

	applicant := domain.Claims{UserID: f.tenant.ID, Role: domain.RoleTenant}
	application, contract, err := f.uc.Execute(context.Background(), f.application.ID,
		domain.ApplicationWithdrawn, applicant)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationWithdrawn, application.Status)
	require.Nil(t, contract)
}

func TestDecideApplication_SettledApplicationIsFinal(t *testing.T) {
	f := newDecideFixture(t)

	require.NoError(t, f.application.Decide(domain.ApplicationRejected, time.Now().UTC()))

	_, _, err := f.uc.Execute(context.Background(), f.application.ID, domain.ApplicationApproved, agentClaims())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDecideApplication_NotFound(t *testing.T) {
	f := newDecideFixture(t)

	_, _, err := f.uc.Execute(context.Background(), uuid.New(), domain.ApplicationApproved, agentClaims())
	require.ErrorIs(t, err, domain.ErrApplicationNotFound)
}
