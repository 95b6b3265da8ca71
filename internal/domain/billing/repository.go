package billing

import (
	"context"
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RentPaymentFilter defines filtering options for rent payment queries
type RentPaymentFilter struct {
	shared.Filter
	TenantID   *uuid.UUID     // Filter by tenant
	PropertyID *uuid.UUID     // Filter by property
	Paid       *bool          // Filter by payment presence
	DueFrom    *time.Time     // Filter by due date range start
	DueTo      *time.Time     // Filter by due date range end
	PaidFrom   *time.Time     // Filter by payment date range start
	PaidTo     *time.Time     // Filter by payment date range end
	Methods    []PaymentMethod
}

// RentPaymentRepository defines the interface for rent payment persistence
type RentPaymentRepository interface {
	// FindByID finds a rent payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RentPayment, error)

	// FindByPeriod finds the tenant's payment record for the period with the
	// given due date
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, periodDueDate time.Time) (*RentPayment, error)

	// FindAll finds rent payments with filtering
	FindAll(ctx context.Context, filter RentPaymentFilter) ([]RentPayment, error)

	// FindOutstanding finds unpaid periods as of the given instant, both
	// pending and overdue
	FindOutstanding(ctx context.Context, asOf time.Time, filter RentPaymentFilter) ([]RentPayment, error)

	// FindOverdue finds unpaid periods whose due date is strictly before
	// the given instant
	FindOverdue(ctx context.Context, asOf time.Time, filter RentPaymentFilter) ([]RentPayment, error)

	// FindPending finds unpaid periods whose due date has not passed yet
	// as of the given instant
	FindPending(ctx context.Context, asOf time.Time, filter RentPaymentFilter) ([]RentPayment, error)

	// FindPaidBetween finds payments with a payment date inside [from, to)
	FindPaidBetween(ctx context.Context, from, to time.Time) ([]RentPayment, error)

	// FindDueBetween finds periods with a due date inside [from, to)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]RentPayment, error)

	// Save creates or updates a rent payment
	Save(ctx context.Context, rp *RentPayment) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, rp *RentPayment) error

	// Count counts rent payments with optional filters
	Count(ctx context.Context, filter RentPaymentFilter) (int64, error)

	// CountOverdue counts the periods FindOverdue would return, ignoring
	// pagination
	CountOverdue(ctx context.Context, asOf time.Time, filter RentPaymentFilter) (int64, error)

	// CountPending counts the periods FindPending would return, ignoring
	// pagination
	CountPending(ctx context.Context, asOf time.Time, filter RentPaymentFilter) (int64, error)
}
