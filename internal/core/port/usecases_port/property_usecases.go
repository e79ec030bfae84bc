package usecases_port

import (
	"context"

	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
)

// CreatePropertyInput carries everything needed to list a new unit.
type CreatePropertyInput struct {
	OwnerID  uuid.UUID
	AgentID  *uuid.UUID
	Title    string
	Building string
	Unit     string
	Area     string
	Type     string
	Beds     int
	Baths    int
	Sqft     int
	Rent     int64
	Cheques  int
	Deposit  int64
	Images   []string
}

// PropertyPatch holds the updatable fields of a property. Nil pointers are
// left untouched. Status moves only along the forward path.
type PropertyPatch struct {
	Title    *string
	Building *string
	Unit     *string
	Area     *string
	Type     *string
	Beds     *int
	Baths    *int
	Sqft     *int
	Rent     *int64
	Cheques  *int
	Deposit  *int64
	Status   *string
	Images   []string
}

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, input CreatePropertyInput) (*domain.Property, error)
}

type ListPropertiesUseCasePort interface {
	Execute(ctx context.Context, filter port.PropertyFilter) ([]*domain.Property, error)
}

type GetPropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, patch PropertyPatch) (*domain.Property, error)
}

type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

type AddPropertyImagesUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID, urls []string) (*domain.Property, error)
}

// SharePropertyUseCasePort returns the stable public URL for a listing.
type SharePropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (string, error)
}
