package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle of a tenant's interest record.
// Approved, rejected and withdrawn are all terminal.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application is a tenant's interest record preceding a contract. An
// approved application yields a draft Contract carrying this application's
// ID, which is how the two stay correlated.
type Application struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	TenantID   uuid.UUID
	Status     ApplicationStatus
	Notes      string
	AppliedAt  time.Time
	DecidedAt  *time.Time

	// Denormalized for list responses.
	PropertyTitle string
	PropertyArea  string
	PropertyImage string
	Rent          int64
	AgentName     string
	AgentPhone    string
}

// NewApplication creates a pending application.
func NewApplication(propertyID, tenantID uuid.UUID, notes string) *Application {
	return &Application{
		ID:         uuid.New(),
		PropertyID: propertyID,
		TenantID:   tenantID,
		Status:     ApplicationPending,
		Notes:      notes,
		AppliedAt:  time.Now().UTC(),
	}
}

// Decide moves a pending application to one of the terminal states.
// Withdrawn is reserved for the applicant; approve/reject for the agent.
func (a *Application) Decide(next ApplicationStatus, now time.Time) error {
	if a.Status != ApplicationPending {
		return ErrInvalidTransition
	}
	switch next {
	case ApplicationApproved, ApplicationRejected, ApplicationWithdrawn:
	default:
		return ErrInvalidTransition
	}
	a.Status = next
	t := now.UTC()
	a.DecidedAt = &t
	return nil
}
