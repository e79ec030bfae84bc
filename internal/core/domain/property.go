package domain

import (
	"time"

	"github.com/google/uuid"
)

// PropertyType enumerates the rental unit kinds the product supports.
type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeVilla     PropertyType = "villa"
	TypeTownhouse PropertyType = "townhouse"
	TypeStudio    PropertyType = "studio"
	TypePenthouse PropertyType = "penthouse"
)

// ValidPropertyType reports whether s is a known property type.
func ValidPropertyType(s string) bool {
	switch PropertyType(s) {
	case TypeApartment, TypeVilla, TypeTownhouse, TypeStudio, TypePenthouse:
		return true
	}
	return false
}

// PropertyStatus is the occupancy state of a unit. The only forward path is
// available -> reserved -> rented; there is no transition back to available.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyReserved  PropertyStatus = "reserved"
	PropertyRented    PropertyStatus = "rented"
)

// ValidPropertyStatus reports whether s is a known property status.
func ValidPropertyStatus(s string) bool {
	switch PropertyStatus(s) {
	case PropertyAvailable, PropertyReserved, PropertyRented:
		return true
	}
	return false
}

var propertyTransitions = map[PropertyStatus][]PropertyStatus{
	PropertyAvailable: {PropertyReserved, PropertyRented},
	PropertyReserved:  {PropertyRented},
	PropertyRented:    {},
}

// CanTransitionTo reports whether the status may move forward to next.
func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	for _, allowed := range propertyTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Property is a rental unit. Rent is the annual amount in whole AED;
// Cheques is the number of post-dated cheque installments per year.
type Property struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	AgentID   *uuid.UUID
	Title     string
	Building  string
	Unit      string
	Area      string
	Type      PropertyType
	Beds      int
	Baths     int
	Sqft      int
	Rent      int64
	Cheques   int
	Deposit   int64
	Status    PropertyStatus
	Images    []string
	CreatedAt time.Time
	UpdatedAt time.Time

	// ViewingsCount is derived by the repository (count of viewings),
	// never stored.
	ViewingsCount int
}

// NewProperty creates an available property owned by ownerID.
func NewProperty(ownerID uuid.UUID, agentID *uuid.UUID, title, building, unit, area string, propType PropertyType,
	beds, baths, sqft int, rent int64, cheques int, deposit int64, images []string) (*Property, error) {

	if title == "" || area == "" {
		return nil, ErrValidation
	}
	if !ValidPropertyType(string(propType)) {
		return nil, ErrValidation
	}
	if beds < 0 || baths < 1 || sqft <= 0 {
		return nil, ErrValidation
	}
	if rent <= 0 || deposit < 0 {
		return nil, ErrValidation
	}
	if cheques < 1 || cheques > 12 {
		return nil, ErrValidation
	}

	now := time.Now().UTC()
	return &Property{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		AgentID:   agentID,
		Title:     title,
		Building:  building,
		Unit:      unit,
		Area:      area,
		Type:      propType,
		Beds:      beds,
		Baths:     baths,
		Sqft:      sqft,
		Rent:      rent,
		Cheques:   cheques,
		Deposit:   deposit,
		Status:    PropertyAvailable,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Transition moves the property to the next status, enforcing the
// forward-only path.
func (p *Property) Transition(next PropertyStatus) error {
	if p.Status == next {
		return nil
	}
	if !p.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	p.Status = next
	p.UpdatedAt = time.Now().UTC()
	return nil
}
