package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/maintenance"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMaintenanceRequestRepository implements maintenance.RequestRepository using GORM
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// FindByID finds a maintenance request by its ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds maintenance requests with filtering and pagination
func (r *GormMaintenanceRequestRepository) FindAll(ctx context.Context, filter maintenance.RequestFilter) (*shared.Paginated[*maintenance.Request], error) {
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var requestModels []models.MaintenanceRequestModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}), filter)
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*maintenance.Request, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	result := shared.NewPaginated(requests, total, page, pageSize)
	return &result, nil
}

// Save creates or updates a maintenance request
func (r *GormMaintenanceRequestRepository) Save(ctx context.Context, request *maintenance.Request) error {
	model := models.MaintenanceRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes a maintenance request
func (r *GormMaintenanceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormMaintenanceRequestRepository) applyFilter(query *gorm.DB, filter maintenance.RequestFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, MaintenanceSortFields, "reported_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query = query.Limit(pageSize)
	if offset := (page - 1) * pageSize; offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func (r *GormMaintenanceRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter maintenance.RequestFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR unit_number ILIKE ?", searchPattern, searchPattern)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	return query
}
