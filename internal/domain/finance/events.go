package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the finance domain
const (
	EventTypeExpenseRecorded = "finance.expense.recorded"
)

const aggregateTypeExpenseRecord = "ExpenseRecord"

// ExpenseRecordedEvent is emitted when a ledger entry is created
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	PropertyID *uuid.UUID      `json:"property_id,omitempty"`
	Category   ExpenseCategory `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredAt time.Time       `json:"incurred_at"`
}

// NewExpenseRecordedEvent creates an ExpenseRecordedEvent
func NewExpenseRecordedEvent(e *ExpenseRecord) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecorded, e.ID, aggregateTypeExpenseRecord),
		PropertyID:      e.PropertyID,
		Category:        e.Category,
		Amount:          e.Amount,
		IncurredAt:      e.IncurredAt,
	}
}
