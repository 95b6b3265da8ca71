package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
)

// ExpenseFilter is the query filter for expense ledger entries
type ExpenseFilter struct {
	shared.Filter
	PropertyID   *uuid.UUID
	Category     *ExpenseCategory
	IncurredFrom *time.Time
	IncurredTo   *time.Time
}

// ExpenseRepository is the persistence port for the expense ledger
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)
	FindAll(ctx context.Context, filter ExpenseFilter) (*shared.Paginated[*ExpenseRecord], error)
	FindIncurredBetween(ctx context.Context, from, to time.Time, propertyID *uuid.UUID) ([]*ExpenseRecord, error)
	Save(ctx context.Context, expense *ExpenseRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
