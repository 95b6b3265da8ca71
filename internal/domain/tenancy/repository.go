package tenancy

import (
	"context"
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantFilter defines filtering options for tenant queries
type TenantFilter struct {
	shared.Filter
	PropertyID   *uuid.UUID // Filter by property
	UnitNumber   string     // Filter by unit
	LeaseEndFrom *time.Time // Filter by lease end date range start
	LeaseEndTo   *time.Time // Filter by lease end date range end
}

// TenantRepository defines the interface for tenant/lease persistence
type TenantRepository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindAll finds all tenants with filtering
	FindAll(ctx context.Context, filter TenantFilter) ([]Tenant, error)

	// FindByProperty finds tenants of a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter TenantFilter) ([]Tenant, error)

	// FindActiveLeases finds tenants whose lease covers the given instant
	FindActiveLeases(ctx context.Context, propertyID uuid.UUID, at time.Time) ([]Tenant, error)

	// CountActiveLeases counts leases of a property covering the given instant
	CountActiveLeases(ctx context.Context, propertyID uuid.UUID, at time.Time) (int64, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// Delete soft deletes a tenant
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tenants with optional filters
	Count(ctx context.Context, filter TenantFilter) (int64, error)
}
