package port

import (
	"context"
	"time"

	"dar360-service/internal/core/domain"

	"github.com/google/uuid"
)

// ViewingWhen selects the derived classification: date >= today is
// upcoming, everything earlier is past.
type ViewingWhen string

const (
	ViewingUpcoming ViewingWhen = "upcoming"
	ViewingPast     ViewingWhen = "past"
)

// ViewingFilter narrows List results. When applies the date predicate
// against Now (query-time derivation, nothing stored).
type ViewingFilter struct {
	PropertyID       *uuid.UUID
	When             *ViewingWhen
	Now              time.Time
	IncludeCancelled bool
	Limit            int
	Offset           int
}

// ViewingRepositoryPort persists showings. FindByID returns (nil, nil) when
// no row matches. Reads join property title/area for display.
type ViewingRepositoryPort interface {
	Create(ctx context.Context, viewing *domain.Viewing) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Viewing, error)
	List(ctx context.Context, filter ViewingFilter) ([]*domain.Viewing, error)
	Update(ctx context.Context, viewing *domain.Viewing) error
}
