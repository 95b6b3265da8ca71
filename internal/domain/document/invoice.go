package document

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LineItem is one billed charge on an invoice
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// LineItems is stored as a JSONB column
type LineItems []LineItem

// Total sums the item amounts
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Amount)
	}
	return total
}

// Value implements driver.Valuer for GORM to store as JSONB
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(LineItems{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}
	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Invoice is an immutable snapshot of one billing period, taken at
// generation time. The source RentPayment keeps moving through its
// lifecycle; the invoice records what was billed and to whom.
type Invoice struct {
	shared.BaseAggregateRoot
	Number        string
	RentPaymentID uuid.UUID
	TenantID      uuid.UUID
	PropertyID    uuid.UUID
	TenantName    string
	PropertyName  string
	UnitNumber    string
	Items         LineItems
	TotalDue      decimal.Decimal
	DueDate       time.Time
	Status        InvoiceStatus
	IssuedAt      time.Time
	PdfPath       string // Storage reference, set after rendering
}

// NewInvoice creates an invoice snapshot. The total is derived from the
// line items, never passed in separately.
func NewInvoice(
	number string,
	rentPaymentID uuid.UUID,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	tenantName string,
	propertyName string,
	unitNumber string,
	items LineItems,
	dueDate time.Time,
	status InvoiceStatus,
) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if rentPaymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Rent payment ID cannot be empty")
	}
	if tenantID == uuid.Nil || propertyID == uuid.Nil {
		return nil, shared.ErrMissingBillingData
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Invoice must have at least one line item")
	}
	for _, item := range items {
		if item.Description == "" {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Line item description cannot be empty")
		}
		if item.Amount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Line item amount cannot be negative")
		}
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		RentPaymentID:     rentPaymentID,
		TenantID:          tenantID,
		PropertyID:        propertyID,
		TenantName:        tenantName,
		PropertyName:      propertyName,
		UnitNumber:        unitNumber,
		Items:             items,
		TotalDue:          items.Total(),
		DueDate:           dueDate,
		Status:            status,
		IssuedAt:          time.Now(),
	}
	inv.AddDomainEvent(NewInvoiceGeneratedEvent(inv))
	return inv, nil
}

// GetTotalDueMoney returns the invoice total as a Money value object
func (i *Invoice) GetTotalDueMoney() valueobject.Money {
	return valueobject.NewMoneyKES(i.TotalDue)
}

// AttachPDF records the storage reference of the rendered document
func (i *Invoice) AttachPDF(path string) error {
	if path == "" {
		return shared.NewDomainError("INVALID_PDF_PATH", "PDF path cannot be empty")
	}
	i.PdfPath = path
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// HasPDF returns true if a rendered document exists
func (i *Invoice) HasPDF() bool {
	return i.PdfPath != ""
}

// InvoiceNumber builds the display number for an invoice issued in the
// given period, e.g. INV-202405-000042.
func InvoiceNumber(period time.Time, sequence int64) string {
	return fmt.Sprintf("INV-%s-%06d", period.Format("200601"), sequence)
}
