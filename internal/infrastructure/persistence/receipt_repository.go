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

// GormReceiptRepository implements document.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a receipt by its document number
func (r *GormReceiptRepository) FindByNumber(ctx context.Context, number string) (*document.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRentPayment finds the receipt generated for a billing period
func (r *GormReceiptRepository) FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) (*document.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).Where("rent_payment_id = ?", rentPaymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds receipts with filtering and pagination
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter document.ReceiptFilter) (*shared.Paginated[*document.Receipt], error) {
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReceiptModel{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var receiptModels []models.ReceiptModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReceiptModel{}), filter)
	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, err
	}

	receipts := make([]*document.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipts[i] = receiptModels[i].ToDomain()
	}
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	result := shared.NewPaginated(receipts, total, page, pageSize)
	return &result, nil
}

// CountIssuedBetween counts receipts issued inside [from, to)
func (r *GormReceiptRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Where("issued_at >= ? AND issued_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence returns the next receipt sequence number for the period's
// month. Numbering restarts at 1 each month.
func (r *GormReceiptRepository) NextSequence(ctx context.Context, period time.Time) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("RCP-%s-%%", period.Format("200601"))
	if err := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Where("number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *document.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormReceiptRepository) applyFilter(query *gorm.DB, filter document.ReceiptFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ReceiptSortFields, "issued_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query = query.Limit(pageSize)
	if offset := (page - 1) * pageSize; offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func (r *GormReceiptRepository) applyFilterWithoutPagination(query *gorm.DB, filter document.ReceiptFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR tenant_name ILIKE ? OR property_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
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
	if filter.IssuedFrom != nil {
		query = query.Where("issued_at >= ?", *filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		query = query.Where("issued_at < ?", *filter.IssuedTo)
	}
	return query
}
