package billing

import (
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the billing domain
const (
	EventTypeRentPaymentCreated   = "billing.rent_payment.created"
	EventTypeWaterReadingRecorded = "billing.water_reading.recorded"
	EventTypePaymentRecorded      = "billing.payment.recorded"
)

const aggregateTypeRentPayment = "RentPayment"

// RentPaymentCreatedEvent is emitted when a billing period opens
type RentPaymentCreatedEvent struct {
	shared.BaseDomainEvent
	TenantID      uuid.UUID       `json:"tenant_id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	PeriodDueDate time.Time       `json:"period_due_date"`
	RentAmount    decimal.Decimal `json:"rent_amount"`
}

// NewRentPaymentCreatedEvent creates a RentPaymentCreatedEvent
func NewRentPaymentCreatedEvent(rp *RentPayment) *RentPaymentCreatedEvent {
	return &RentPaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRentPaymentCreated, rp.ID, aggregateTypeRentPayment),
		TenantID:        rp.TenantID,
		PropertyID:      rp.PropertyID,
		PeriodDueDate:   rp.PeriodDueDate,
		RentAmount:      rp.RentAmount,
	}
}

// WaterReadingRecordedEvent is emitted when a meter reading is attached
type WaterReadingRecordedEvent struct {
	shared.BaseDomainEvent
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	Usage           decimal.Decimal `json:"usage"`
}

// NewWaterReadingRecordedEvent creates a WaterReadingRecordedEvent
func NewWaterReadingRecordedEvent(rp *RentPayment, reading *WaterMeterReading) *WaterReadingRecordedEvent {
	return &WaterReadingRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWaterReadingRecorded, rp.ID, aggregateTypeRentPayment),
		PreviousReading: reading.PreviousReading,
		CurrentReading:  reading.CurrentReading,
		Usage:           reading.Usage(),
	}
}

// PaymentRecordedEvent is emitted when a payment is recorded for a period
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	TenantID      uuid.UUID       `json:"tenant_id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Late          bool            `json:"late"`
}

// NewPaymentRecordedEvent creates a PaymentRecordedEvent
func NewPaymentRecordedEvent(rp *RentPayment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, rp.ID, aggregateTypeRentPayment),
		TenantID:        rp.TenantID,
		PropertyID:      rp.PropertyID,
		Amount:          rp.RentAmount,
		PaymentDate:     *rp.PaymentDate,
		PaymentMethod:   rp.PaymentMethod,
		Late:            rp.IsLate(),
	}
}
