package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the document domain
const (
	EventTypeInvoiceGenerated   = "document.invoice.generated"
	EventTypeReceiptGenerated   = "document.receipt.generated"
	EventTypeReminderCreated    = "document.reminder.created"
	EventTypeReminderDispatched = "document.reminder.dispatched"
)

const (
	aggregateTypeInvoice  = "Invoice"
	aggregateTypeReceipt  = "Receipt"
	aggregateTypeReminder = "Reminder"
)

// InvoiceGeneratedEvent is emitted when an invoice snapshot is taken
type InvoiceGeneratedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	RentPaymentID uuid.UUID       `json:"rent_payment_id"`
	TotalDue      decimal.Decimal `json:"total_due"`
	DueDate       time.Time       `json:"due_date"`
}

// NewInvoiceGeneratedEvent creates an InvoiceGeneratedEvent
func NewInvoiceGeneratedEvent(inv *Invoice) *InvoiceGeneratedEvent {
	return &InvoiceGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceGenerated, inv.ID, aggregateTypeInvoice),
		Number:          inv.Number,
		RentPaymentID:   inv.RentPaymentID,
		TotalDue:        inv.TotalDue,
		DueDate:         inv.DueDate,
	}
}

// ReceiptGeneratedEvent is emitted when a receipt is issued for a paid period
type ReceiptGeneratedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	RentPaymentID uuid.UUID       `json:"rent_payment_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// NewReceiptGeneratedEvent creates a ReceiptGeneratedEvent
func NewReceiptGeneratedEvent(r *Receipt) *ReceiptGeneratedEvent {
	return &ReceiptGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptGenerated, r.ID, aggregateTypeReceipt),
		Number:          r.Number,
		RentPaymentID:   r.RentPaymentID,
		InvoiceID:       r.InvoiceID,
		AmountPaid:      r.AmountPaid,
		PaymentDate:     r.PaymentDate,
	}
}

// ReminderCreatedEvent is emitted when a reminder is composed
type ReminderCreatedEvent struct {
	shared.BaseDomainEvent
	RentPaymentID uuid.UUID       `json:"rent_payment_id"`
	Channel       ReminderChannel `json:"channel"`
	CustomMessage bool            `json:"custom_message"`
}

// NewReminderCreatedEvent creates a ReminderCreatedEvent
func NewReminderCreatedEvent(r *Reminder) *ReminderCreatedEvent {
	return &ReminderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReminderCreated, r.ID, aggregateTypeReminder),
		RentPaymentID:   r.RentPaymentID,
		Channel:         r.Channel,
		CustomMessage:   r.CustomMessage,
	}
}

// ReminderDispatchedEvent is emitted after the channel fan-out completed
type ReminderDispatchedEvent struct {
	shared.BaseDomainEvent
	RentPaymentID uuid.UUID       `json:"rent_payment_id"`
	Channel       ReminderChannel `json:"channel"`
	Outcome       ReminderOutcome `json:"outcome"`
	Partial       bool            `json:"partial"`
}

// NewReminderDispatchedEvent creates a ReminderDispatchedEvent
func NewReminderDispatchedEvent(r *Reminder) *ReminderDispatchedEvent {
	return &ReminderDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReminderDispatched, r.ID, aggregateTypeReminder),
		RentPaymentID:   r.RentPaymentID,
		Channel:         r.Channel,
		Outcome:         r.Outcome,
		Partial:         r.PartiallyDelivered(),
	}
}
