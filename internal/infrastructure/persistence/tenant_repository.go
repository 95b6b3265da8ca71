package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/kejaplus/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements tenancy.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants with filtering
func (r *GormTenantRepository) FindAll(ctx context.Context, filter tenancy.TenantFilter) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(tenantModels), nil
}

// FindByProperty finds tenants of a property
func (r *GormTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter tenancy.TenantFilter) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("property_id = ?", propertyID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(tenantModels), nil
}

// FindActiveLeases finds tenants whose lease covers the given instant
func (r *GormTenantRepository) FindActiveLeases(ctx context.Context, propertyID uuid.UUID, at time.Time) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND lease_start_date <= ? AND lease_end_date >= ?", propertyID, at, at).
		Order("unit_number ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(tenantModels), nil
}

// CountActiveLeases counts leases of a property covering the given instant
func (r *GormTenantRepository) CountActiveLeases(ctx context.Context, propertyID uuid.UUID, at time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("property_id = ? AND lease_start_date <= ? AND lease_end_date >= ?", propertyID, at, at).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TenantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tenants with optional filters
func (r *GormTenantRepository) Count(ctx context.Context, filter tenancy.TenantFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTenantRepository) toDomainSlice(tenantModels []models.TenantModel) []tenancy.Tenant {
	tenants := make([]tenancy.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = *tenantModels[i].ToDomain()
	}
	return tenants
}

func (r *GormTenantRepository) applyFilter(query *gorm.DB, filter tenancy.TenantFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}

func (r *GormTenantRepository) applyFilterWithoutPagination(query *gorm.DB, filter tenancy.TenantFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR unit_number ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.UnitNumber != "" {
		query = query.Where("unit_number = ?", filter.UnitNumber)
	}
	if filter.LeaseEndFrom != nil {
		query = query.Where("lease_end_date >= ?", *filter.LeaseEndFrom)
	}
	if filter.LeaseEndTo != nil {
		query = query.Where("lease_end_date <= ?", *filter.LeaseEndTo)
	}
	return query
}
