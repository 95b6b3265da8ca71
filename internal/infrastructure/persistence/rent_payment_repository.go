package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRentPaymentRepository implements billing.RentPaymentRepository using GORM
type GormRentPaymentRepository struct {
	db *gorm.DB
}

// NewGormRentPaymentRepository creates a new GormRentPaymentRepository
func NewGormRentPaymentRepository(db *gorm.DB) *GormRentPaymentRepository {
	return &GormRentPaymentRepository{db: db}
}

// FindByID finds a rent payment by its ID
func (r *GormRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the tenant's payment record for the period with the
// given due date
func (r *GormRentPaymentRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, periodDueDate time.Time) (*billing.RentPayment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND period_due_date = ?", tenantID, periodDueDate).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds rent payments with filtering
func (r *GormRentPaymentRepository) FindAll(ctx context.Context, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(paymentModels), nil
}

// FindOutstanding finds unpaid periods as of the given instant, both
// pending and overdue
func (r *GormRentPaymentRepository) FindOutstanding(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Where("payment_date IS NULL")
	query = r.applyFilter(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(paymentModels), nil
}

// FindOverdue finds unpaid periods whose due date is strictly before
// the given instant
func (r *GormRentPaymentRepository) FindOverdue(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Where("payment_date IS NULL AND period_due_date < ?", asOf)
	query = r.applyFilter(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(paymentModels), nil
}

// FindPending finds unpaid periods whose due date has not passed yet
// as of the given instant
func (r *GormRentPaymentRepository) FindPending(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Where("payment_date IS NULL AND period_due_date >= ?", asOf)
	query = r.applyFilter(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(paymentModels), nil
}

// FindPaidBetween finds payments with a payment date inside [from, to)
func (r *GormRentPaymentRepository) FindPaidBetween(ctx context.Context, from, to time.Time) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Order("payment_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(paymentModels), nil
}

// FindDueBetween finds periods with a due date inside [from, to)
func (r *GormRentPaymentRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]billing.RentPayment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("period_due_date >= ? AND period_due_date < ?", from, to).
		Order("period_due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(paymentModels), nil
}

// Save creates or updates a rent payment
func (r *GormRentPaymentRepository) Save(ctx context.Context, rp *billing.RentPayment) error {
	model := models.RentPaymentModelFromDomain(rp)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the rent payment with optimistic locking
func (r *GormRentPaymentRepository) SaveWithLock(ctx context.Context, rp *billing.RentPayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.RentPaymentModel
		if err := tx.Select("version").Where("id = ?", rp.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// New record, just save
				model := models.RentPaymentModelFromDomain(rp)
				return tx.Create(model).Error
			}
			return err
		}

		// Domain model already incremented the version
		expectedVersion := rp.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.NewDomainError("VERSION_CONFLICT", "Rent payment has been modified by another user")
		}

		model := models.RentPaymentModelFromDomain(rp)
		result := tx.Model(model).
			Where("id = ? AND version = ?", rp.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("VERSION_CONFLICT", "Rent payment has been modified by another user")
		}
		return nil
	})
}

// Count counts rent payments with optional filters
func (r *GormRentPaymentRepository) Count(ctx context.Context, filter billing.RentPaymentFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOverdue counts the periods FindOverdue would return, ignoring
// pagination. Paged status listings get their totals from the same
// predicate the page query used.
func (r *GormRentPaymentRepository) CountOverdue(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Where("payment_date IS NULL AND period_due_date < ?", asOf)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPending counts the periods FindPending would return, ignoring
// pagination
func (r *GormRentPaymentRepository) CountPending(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).
		Where("payment_date IS NULL AND period_due_date >= ?", asOf)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRentPaymentRepository) toDomainSlice(paymentModels []models.RentPaymentModel) []billing.RentPayment {
	payments := make([]billing.RentPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments
}

// applyFilter applies filter conditions, sorting, and pagination to query
func (r *GormRentPaymentRepository) applyFilter(query *gorm.DB, filter billing.RentPaymentFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Sorting is whitelist-validated to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, RentPaymentSortFields, "period_due_date")
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

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormRentPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter billing.RentPaymentFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("tenant_name ILIKE ? OR property_name ILIKE ? OR unit_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Paid != nil {
		if *filter.Paid {
			query = query.Where("payment_date IS NOT NULL")
		} else {
			query = query.Where("payment_date IS NULL")
		}
	}
	if filter.DueFrom != nil {
		query = query.Where("period_due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("period_due_date < ?", *filter.DueTo)
	}
	if filter.PaidFrom != nil {
		query = query.Where("payment_date >= ?", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		query = query.Where("payment_date < ?", *filter.PaidTo)
	}
	if len(filter.Methods) > 0 {
		methods := make([]string, len(filter.Methods))
		for i, m := range filter.Methods {
			methods[i] = m.String()
		}
		query = query.Where("payment_method IN ?", methods)
	}
	return query
}
