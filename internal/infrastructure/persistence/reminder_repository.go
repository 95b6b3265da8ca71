package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReminderRepository implements document.ReminderRepository using GORM
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GormReminderRepository
func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// FindByID finds a reminder by its ID
func (r *GormReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Reminder, error) {
	var model models.ReminderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRentPayment finds all reminders sent for a billing period,
// newest first
func (r *GormReminderRepository) FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) ([]*document.Reminder, error) {
	var reminderModels []models.ReminderModel
	if err := r.db.WithContext(ctx).
		Where("rent_payment_id = ?", rentPaymentID).
		Order("created_at DESC").
		Find(&reminderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(reminderModels), nil
}

// FindAll finds reminders with filtering and pagination
func (r *GormReminderRepository) FindAll(ctx context.Context, filter document.ReminderFilter) (*shared.Paginated[*document.Reminder], error) {
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReminderModel{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var reminderModels []models.ReminderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReminderModel{}), filter)
	if err := query.Find(&reminderModels).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	result := shared.NewPaginated(r.toDomainSlice(reminderModels), total, page, pageSize)
	return &result, nil
}

// FindUnresolvedByRentPayment finds reminders for a period that have not
// been resolved by a payment
func (r *GormReminderRepository) FindUnresolvedByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) ([]*document.Reminder, error) {
	var reminderModels []models.ReminderModel
	if err := r.db.WithContext(ctx).
		Where("rent_payment_id = ? AND outcome <> ?", rentPaymentID, string(document.ReminderOutcomeResolved)).
		Order("created_at DESC").
		Find(&reminderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(reminderModels), nil
}

// CountCreatedBetween counts reminders created inside [from, to)
func (r *GormReminderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReminderModel{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a reminder
func (r *GormReminderRepository) Save(ctx context.Context, reminder *document.Reminder) error {
	model := models.ReminderModelFromDomain(reminder)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormReminderRepository) toDomainSlice(reminderModels []models.ReminderModel) []*document.Reminder {
	reminders := make([]*document.Reminder, len(reminderModels))
	for i := range reminderModels {
		reminders[i] = reminderModels[i].ToDomain()
	}
	return reminders
}

func (r *GormReminderRepository) applyFilter(query *gorm.DB, filter document.ReminderFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ReminderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query = query.Limit(pageSize)
	if offset := (page - 1) * pageSize; offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func (r *GormReminderRepository) applyFilterWithoutPagination(query *gorm.DB, filter document.ReminderFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("tenant_name ILIKE ? OR property_name ILIKE ?", searchPattern, searchPattern)
	}
	if filter.RentPaymentID != nil {
		query = query.Where("rent_payment_id = ?", *filter.RentPaymentID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Outcome != nil {
		query = query.Where("outcome = ?", string(*filter.Outcome))
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}
	return query
}
