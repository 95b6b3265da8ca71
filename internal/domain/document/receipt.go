package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Receipt is the proof-of-payment snapshot for a fully settled billing
// period. Receipts are only issued against paid periods, so the pending
// balance on a receipt is always zero.
type Receipt struct {
	shared.BaseAggregateRoot
	Number        string
	RentPaymentID uuid.UUID
	InvoiceID     uuid.UUID
	TenantID      uuid.UUID
	PropertyID    uuid.UUID
	TenantName    string
	PropertyName  string
	UnitNumber    string
	AmountPaid    decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod string
	// Water figures carried over for the tenant's records. HasWaterReading
	// distinguishes a zero-usage reading from no reading at all; the
	// decimal figures alone cannot.
	HasWaterReading bool
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	WaterCharge     decimal.Decimal
	PendingBalance  decimal.Decimal
	IssuedAt        time.Time
	PdfPath         string
}

// NewReceipt creates a receipt snapshot for a paid period. Callers are
// responsible for the paid check on the source period; an unpaid period
// has no payment date and is rejected here.
func NewReceipt(
	number string,
	rentPaymentID uuid.UUID,
	invoiceID uuid.UUID,
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	tenantName string,
	propertyName string,
	unitNumber string,
	amountPaid valueobject.Money,
	paymentDate time.Time,
	paymentMethod string,
) (*Receipt, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Receipt number cannot be empty")
	}
	if rentPaymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Rent payment ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Receipt requires the period's invoice")
	}
	if tenantID == uuid.Nil || propertyID == uuid.Nil {
		return nil, shared.ErrMissingBillingData
	}
	if !amountPaid.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount must be positive")
	}
	if paymentDate.IsZero() {
		return nil, shared.ErrNotPaid
	}

	r := &Receipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		RentPaymentID:     rentPaymentID,
		InvoiceID:         invoiceID,
		TenantID:          tenantID,
		PropertyID:        propertyID,
		TenantName:        tenantName,
		PropertyName:      propertyName,
		UnitNumber:        unitNumber,
		AmountPaid:        amountPaid.Amount(),
		PaymentDate:       paymentDate,
		PaymentMethod:     paymentMethod,
		PendingBalance:    decimal.Zero,
		IssuedAt:          time.Now(),
	}
	r.AddDomainEvent(NewReceiptGeneratedEvent(r))
	return r, nil
}

// WithWaterFigures attaches the period's meter figures for display
func (r *Receipt) WithWaterFigures(previous, current, charge decimal.Decimal) *Receipt {
	r.HasWaterReading = true
	r.PreviousReading = previous
	r.CurrentReading = current
	r.WaterCharge = charge
	return r
}

// GetAmountPaidMoney returns the settled amount as a Money value object
func (r *Receipt) GetAmountPaidMoney() valueobject.Money {
	return valueobject.NewMoneyKES(r.AmountPaid)
}

// AttachPDF records the storage reference of the rendered document
func (r *Receipt) AttachPDF(path string) error {
	if path == "" {
		return shared.NewDomainError("INVALID_PDF_PATH", "PDF path cannot be empty")
	}
	r.PdfPath = path
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// HasPDF returns true if a rendered document exists
func (r *Receipt) HasPDF() bool {
	return r.PdfPath != ""
}

// ReceiptNumber builds the display number for a receipt issued in the
// given period, e.g. RCP-202405-000042.
func ReceiptNumber(period time.Time, sequence int64) string {
	return fmt.Sprintf("RCP-%s-%06d", period.Format("200601"), sequence)
}
