package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/finance"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var model models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expense records with filtering and pagination
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) (*shared.Paginated[*finance.ExpenseRecord], error) {
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var expenseModels []models.ExpenseRecordModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{}), filter)
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]*finance.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	result := shared.NewPaginated(expenses, total, page, pageSize)
	return &result, nil
}

// FindIncurredBetween finds expenses incurred inside [from, to), optionally
// scoped to one property. Portfolio-level entries (nil property) are always
// included in the unscoped query only.
func (r *GormExpenseRepository) FindIncurredBetween(ctx context.Context, from, to time.Time, propertyID *uuid.UUID) ([]*finance.ExpenseRecord, error) {
	query := r.db.WithContext(ctx).
		Where("incurred_at >= ? AND incurred_at < ?", from, to)
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}

	var expenseModels []models.ExpenseRecordModel
	if err := query.Order("incurred_at ASC").Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]*finance.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense record
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	model := models.ExpenseRecordModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes an expense record
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ExpenseSortFields, "incurred_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query = query.Limit(pageSize)
	if offset := (page - 1) * pageSize; offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.IncurredFrom != nil {
		query = query.Where("incurred_at >= ?", *filter.IncurredFrom)
	}
	if filter.IncurredTo != nil {
		query = query.Where("incurred_at < ?", *filter.IncurredTo)
	}
	return query
}
