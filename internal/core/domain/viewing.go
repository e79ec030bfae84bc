package domain

import (
	"time"

	"github.com/google/uuid"
)

// ViewingOutcome is logged once for a viewing whose date has passed.
type ViewingOutcome string

const (
	OutcomeInterested    ViewingOutcome = "interested"
	OutcomeNotInterested ViewingOutcome = "not_interested"
	OutcomeNoShow        ViewingOutcome = "no_show"
	OutcomeOfferMade     ViewingOutcome = "offer_made"
)

// ValidViewingOutcome reports whether s is a known outcome.
func ValidViewingOutcome(s string) bool {
	switch ViewingOutcome(s) {
	case OutcomeInterested, OutcomeNotInterested, OutcomeNoShow, OutcomeOfferMade:
		return true
	}
	return false
}

// Viewing is a scheduled property showing. There is no stored upcoming/past
// flag: the classification is derived from Date against the current day.
type Viewing struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	TenantName  string
	TenantPhone string
	Date        time.Time // calendar date, midnight UTC
	TimeSlot    string    // free-text slot, e.g. "16:00 - 16:30"
	Outcome     *ViewingOutcome
	Notes       string
	CancelledAt *time.Time
	CreatedAt   time.Time

	// Denormalized for list responses, filled by the repository join.
	PropertyTitle string
	PropertyArea  string
}

// NewViewing schedules a viewing for a property.
func NewViewing(propertyID uuid.UUID, tenantName, tenantPhone string, date time.Time, timeSlot string) (*Viewing, error) {
	if tenantName == "" || timeSlot == "" || date.IsZero() {
		return nil, ErrValidation
	}
	return &Viewing{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		TenantName:  tenantName,
		TenantPhone: tenantPhone,
		Date:        date.UTC().Truncate(24 * time.Hour),
		TimeSlot:    timeSlot,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// IsUpcoming reports whether the viewing date is today or later. Every
// non-cancelled viewing is exactly one of upcoming or past.
func (v *Viewing) IsUpcoming(now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)
	return !v.Date.Before(today)
}

// LogOutcome records the result of a viewing. The outcome can be set exactly
// once, only after the viewing date has passed, and never for a cancelled
// viewing.
func (v *Viewing) LogOutcome(outcome ViewingOutcome, notes string, now time.Time) error {
	if v.CancelledAt != nil {
		return ErrViewingCancelled
	}
	if v.Outcome != nil {
		return ErrOutcomeAlreadySet
	}
	if v.IsUpcoming(now) {
		return ErrViewingNotPast
	}
	if !ValidViewingOutcome(string(outcome)) {
		return ErrValidation
	}
	v.Outcome = &outcome
	if notes != "" {
		v.Notes = notes
	}
	return nil
}

// Cancel marks the viewing as cancelled. Viewings are never deleted.
func (v *Viewing) Cancel(now time.Time) error {
	if v.Outcome != nil {
		return ErrOutcomeAlreadySet
	}
	if v.CancelledAt != nil {
		return nil
	}
	t := now.UTC()
	v.CancelledAt = &t
	return nil
}
