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

// GormInvoiceRepository implements document.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its document number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*document.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRentPayment finds the invoice generated for a billing period
func (r *GormInvoiceRepository) FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) (*document.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Where("rent_payment_id = ?", rentPaymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices with filtering and pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter document.InvoiceFilter) (*shared.Paginated[*document.Invoice], error) {
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]*document.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToDomain()
	}
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	result := shared.NewPaginated(invoices, total, page, pageSize)
	return &result, nil
}

// CountIssuedBetween counts invoices issued inside [from, to)
func (r *GormInvoiceRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("issued_at >= ? AND issued_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence returns the next invoice sequence number for the period's
// month. Numbering restarts at 1 each month.
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, period time.Time) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("INV-%s-%%", period.Format("200601"))
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *document.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter document.InvoiceFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "issued_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query = query.Limit(pageSize)
	if offset := (page - 1) * pageSize; offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter document.InvoiceFilter) *gorm.DB {
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
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issued_at >= ?", *filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		query = query.Where("issued_at < ?", *filter.IssuedTo)
	}
	return query
}

// normalizePage clamps page and page size to sane defaults
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
