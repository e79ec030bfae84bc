package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceCategory classifies a maintenance request.
type MaintenanceCategory string

const (
	CategoryPlumbing   MaintenanceCategory = "plumbing"
	CategoryElectrical MaintenanceCategory = "electrical"
	CategoryHVAC       MaintenanceCategory = "hvac"
	CategoryAppliance  MaintenanceCategory = "appliance"
	CategoryStructural MaintenanceCategory = "structural"
	CategoryGeneral    MaintenanceCategory = "general"
	CategoryOther      MaintenanceCategory = "other"
)

// ValidMaintenanceCategory reports whether s is a known category.
func ValidMaintenanceCategory(s string) bool {
	switch MaintenanceCategory(s) {
	case CategoryPlumbing, CategoryElectrical, CategoryHVAC, CategoryAppliance,
		CategoryStructural, CategoryGeneral, CategoryOther:
		return true
	}
	return false
}

// MaintenancePriority ranks request urgency.
type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

// ValidMaintenancePriority reports whether s is a known priority.
func ValidMaintenancePriority(s string) bool {
	switch MaintenancePriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// MaintenanceStatus is the single reconciled vocabulary for all roles:
// new -> in_progress -> pending_approval -> completed. The owner approves
// the cost estimate before a request can complete.
type MaintenanceStatus string

const (
	MaintenanceNew             MaintenanceStatus = "new"
	MaintenanceInProgress      MaintenanceStatus = "in_progress"
	MaintenancePendingApproval MaintenanceStatus = "pending_approval"
	MaintenanceCompleted       MaintenanceStatus = "completed"
)

// ValidMaintenanceStatus reports whether s is a known maintenance status.
func ValidMaintenanceStatus(s string) bool {
	switch MaintenanceStatus(s) {
	case MaintenanceNew, MaintenanceInProgress, MaintenancePendingApproval, MaintenanceCompleted:
		return true
	}
	return false
}

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceNew:             {MaintenanceInProgress},
	MaintenanceInProgress:      {MaintenancePendingApproval, MaintenanceCompleted},
	MaintenancePendingApproval: {MaintenanceCompleted},
	MaintenanceCompleted:       {},
}

// CanTransitionTo reports whether the status may move forward to next.
func (s MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	for _, allowed := range maintenanceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MaintenanceRequest is raised by a tenant and worked by the agent; the
// owner approves costs.
type MaintenanceRequest struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	TenantID    uuid.UUID
	Category    MaintenanceCategory
	Priority    MaintenancePriority
	Title       string
	Description string
	Status      MaintenanceStatus
	Notes       string
	Images      []string
	Cost        *int64
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Denormalized for list responses.
	PropertyBuilding string
	PropertyUnit     string
	PropertyArea     string
	TenantName       string
	TenantPhone      string
}

// NewMaintenanceRequest creates a request in status new.
func NewMaintenanceRequest(propertyID, tenantID uuid.UUID, category MaintenanceCategory,
	priority MaintenancePriority, title, description string, images []string) (*MaintenanceRequest, error) {

	if title == "" || description == "" {
		return nil, ErrValidation
	}
	if !ValidMaintenanceCategory(string(category)) || !ValidMaintenancePriority(string(priority)) {
		return nil, ErrValidation
	}

	now := time.Now().UTC()
	return &MaintenanceRequest{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		TenantID:    tenantID,
		Category:    category,
		Priority:    priority,
		Title:       title,
		Description: description,
		Status:      MaintenanceNew,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Transition moves the request forward. Entering pending_approval requires a
// cost estimate; completing stamps ResolvedAt.
func (m *MaintenanceRequest) Transition(next MaintenanceStatus, now time.Time) error {
	if m.Status == next {
		return nil
	}
	if !m.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	if next == MaintenancePendingApproval && m.Cost == nil {
		return ErrValidation
	}
	m.Status = next
	if next == MaintenanceCompleted {
		t := now.UTC()
		m.ResolvedAt = &t
	}
	m.UpdatedAt = now.UTC()
	return nil
}
