package property

import (
	"context"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyFilter defines filtering options for property queries
type PropertyFilter struct {
	shared.Filter
	Type     *PropertyType // Filter by property type
	Location string        // Substring match on location
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByName finds a property by its exact name
	FindByName(ctx context.Context, name string) (*Property, error)

	// FindAll finds all properties with filtering
	FindAll(ctx context.Context, filter PropertyFilter) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, p *Property) error

	// Delete soft deletes a property
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts properties with optional filters
	Count(ctx context.Context, filter PropertyFilter) (int64, error)
}
