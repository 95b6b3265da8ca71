package billing

import (
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a rent payment.
// Overdue is derived lazily from the due date on every read; only the fact
// of payment is persisted.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentMethod is how a rent payment was made
type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "MPESA"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodCard         PaymentMethod = "CARD"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodMpesa, PaymentMethodBankTransfer, PaymentMethodCash,
		PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// RentPayment is the central aggregate for one billing period of one
// tenancy. It is created when the period opens and mutated as the meter
// reading, invoice, payment, and receipt are recorded. Records are never
// deleted; historical periods remain for reporting.
type RentPayment struct {
	shared.BaseAggregateRoot
	TenantID      uuid.UUID
	PropertyID    uuid.UUID
	UnitNumber    string
	TenantName    string // Denormalized for documents and reminders
	PropertyName  string // Denormalized for documents and reminders
	PeriodDueDate time.Time
	RentAmount    decimal.Decimal
	WaterReading  *WaterMeterReading
	InvoiceID     *uuid.UUID
	ReceiptID     *uuid.UUID
	PaymentDate   *time.Time
	PaymentMethod PaymentMethod
}

// NewRentPayment opens a billing period for a tenancy
func NewRentPayment(
	tenantID uuid.UUID,
	propertyID uuid.UUID,
	unitNumber string,
	tenantName string,
	propertyName string,
	periodDueDate time.Time,
	rentAmount valueobject.Money,
) (*RentPayment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if periodDueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Period due date cannot be empty")
	}
	if !rentAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent amount must be positive")
	}

	rp := &RentPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PropertyID:        propertyID,
		UnitNumber:        unitNumber,
		TenantName:        tenantName,
		PropertyName:      propertyName,
		PeriodDueDate:     periodDueDate,
		RentAmount:        rentAmount.Amount(),
	}
	rp.AddDomainEvent(NewRentPaymentCreatedEvent(rp))
	return rp, nil
}

// GetRentMoney returns the base rent as a Money value object
func (rp *RentPayment) GetRentMoney() valueobject.Money {
	return valueobject.NewMoneyKES(rp.RentAmount)
}

// IsPaid reports whether a payment has been recorded. The presence of a
// payment date is authoritative, regardless of the due-date comparison.
func (rp *RentPayment) IsPaid() bool {
	return rp.PaymentDate != nil
}

// StatusAt resolves the lifecycle status at the given instant.
// Paid wins over Overdue when both conditions hold. A period with no
// payment date turns Overdue only once now is strictly past the due date.
func (rp *RentPayment) StatusAt(now time.Time) PaymentStatus {
	if rp.IsPaid() {
		return PaymentStatusPaid
	}
	if now.After(rp.PeriodDueDate) {
		return PaymentStatusOverdue
	}
	return PaymentStatusPending
}

// IsLate reports whether the recorded payment arrived strictly after the
// due date. A payment made exactly on the due date is on time.
func (rp *RentPayment) IsLate() bool {
	return rp.PaymentDate != nil && rp.PaymentDate.After(rp.PeriodDueDate)
}

// LateDays returns the number of whole days the payment was late, zero for
// on-time or unpaid periods.
func (rp *RentPayment) LateDays() int {
	if !rp.IsLate() {
		return 0
	}
	return int(rp.PaymentDate.Sub(rp.PeriodDueDate).Hours() / 24)
}

// RecordWaterReading attaches the period's meter reading. The reading can
// be corrected until an invoice has been generated from it.
func (rp *RentPayment) RecordWaterReading(reading *WaterMeterReading) error {
	if reading == nil {
		return shared.NewDomainError(shared.ErrCodeInvalidReading, "Meter reading cannot be nil")
	}
	if rp.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Cannot change the meter reading after an invoice has been generated")
	}

	rp.WaterReading = reading
	rp.UpdatedAt = time.Now()
	rp.IncrementVersion()
	rp.AddDomainEvent(NewWaterReadingRecordedEvent(rp, reading))
	return nil
}

// RecordPayment marks the period as paid. Paid is terminal for a period.
func (rp *RentPayment) RecordPayment(paymentDate time.Time, method PaymentMethod) error {
	if rp.IsPaid() {
		return shared.NewDomainError("INVALID_STATE", "Payment has already been recorded for this period")
	}
	if paymentDate.IsZero() {
		return shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date cannot be empty")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	rp.PaymentDate = &paymentDate
	rp.PaymentMethod = method
	rp.UpdatedAt = time.Now()
	rp.IncrementVersion()
	rp.AddDomainEvent(NewPaymentRecordedEvent(rp))
	return nil
}

// MarkInvoiced links the period's invoice. One period has at most one
// active invoice.
func (rp *RentPayment) MarkInvoiced(invoiceID uuid.UUID) error {
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if rp.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "An invoice has already been generated for this period")
	}

	rp.InvoiceID = &invoiceID
	rp.UpdatedAt = time.Now()
	rp.IncrementVersion()
	return nil
}

// MarkReceipted links the period's receipt. Requires a recorded payment
// and a prior invoice: no invoice, no receipt.
func (rp *RentPayment) MarkReceipted(receiptID uuid.UUID) error {
	if receiptID == uuid.Nil {
		return shared.NewDomainError("INVALID_RECEIPT", "Receipt ID cannot be empty")
	}
	if !rp.IsPaid() {
		return shared.ErrNotPaid
	}
	if rp.InvoiceID == nil {
		return shared.NewDomainError("INVALID_STATE", "An invoice must be generated before a receipt")
	}
	if rp.ReceiptID != nil {
		return shared.NewDomainError("INVALID_STATE", "A receipt has already been generated for this period")
	}

	rp.ReceiptID = &receiptID
	rp.UpdatedAt = time.Now()
	rp.IncrementVersion()
	return nil
}
