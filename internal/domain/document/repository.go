package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
)

// InvoiceFilter is the query filter for invoices
type InvoiceFilter struct {
	shared.Filter
	RentPaymentID *uuid.UUID
	PropertyID    *uuid.UUID
	TenantID      *uuid.UUID
	Status        *InvoiceStatus
	IssuedFrom    *time.Time
	IssuedTo      *time.Time
}

// InvoiceRepository is the persistence port for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) (*shared.Paginated[*Invoice], error)
	CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error)
	NextSequence(ctx context.Context, period time.Time) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
}

// ReceiptFilter is the query filter for receipts
type ReceiptFilter struct {
	shared.Filter
	RentPaymentID *uuid.UUID
	PropertyID    *uuid.UUID
	TenantID      *uuid.UUID
	IssuedFrom    *time.Time
	IssuedTo      *time.Time
}

// ReceiptRepository is the persistence port for receipts
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindByNumber(ctx context.Context, number string) (*Receipt, error)
	FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) (*Receipt, error)
	FindAll(ctx context.Context, filter ReceiptFilter) (*shared.Paginated[*Receipt], error)
	CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error)
	NextSequence(ctx context.Context, period time.Time) (int64, error)
	Save(ctx context.Context, receipt *Receipt) error
}

// ReminderFilter is the query filter for reminders
type ReminderFilter struct {
	shared.Filter
	RentPaymentID *uuid.UUID
	PropertyID    *uuid.UUID
	TenantID      *uuid.UUID
	Outcome       *ReminderOutcome
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// ReminderRepository is the persistence port for reminders
type ReminderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Reminder, error)
	FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) ([]*Reminder, error)
	FindAll(ctx context.Context, filter ReminderFilter) (*shared.Paginated[*Reminder], error)
	FindUnresolvedByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) ([]*Reminder, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	Save(ctx context.Context, reminder *Reminder) error
}
