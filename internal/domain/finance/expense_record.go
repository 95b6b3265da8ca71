package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of a property expense
type ExpenseCategory string

const (
	ExpenseCategoryMaintenance    ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryUtilities      ExpenseCategory = "UTILITIES"
	ExpenseCategoryInsurance      ExpenseCategory = "INSURANCE"
	ExpenseCategoryPropertyTax    ExpenseCategory = "PROPERTY_TAX"
	ExpenseCategoryManagementFees ExpenseCategory = "MANAGEMENT_FEES"
	ExpenseCategoryOther          ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryMaintenance, ExpenseCategoryUtilities, ExpenseCategoryInsurance,
		ExpenseCategoryPropertyTax, ExpenseCategoryManagementFees, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the category
func (c ExpenseCategory) DisplayName() string {
	switch c {
	case ExpenseCategoryMaintenance:
		return "Maintenance"
	case ExpenseCategoryUtilities:
		return "Utilities"
	case ExpenseCategoryInsurance:
		return "Insurance"
	case ExpenseCategoryPropertyTax:
		return "Property Tax"
	case ExpenseCategoryManagementFees:
		return "Management Fees"
	case ExpenseCategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// AllExpenseCategories returns all valid ExpenseCategory values
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryMaintenance, ExpenseCategoryUtilities, ExpenseCategoryInsurance,
		ExpenseCategoryPropertyTax, ExpenseCategoryManagementFees, ExpenseCategoryOther,
	}
}

// ExpenseRecord is one entry in the expense ledger. The ledger is the
// outflow side of the financial reports; entries are scoped to a
// property when the cost is attributable, portfolio-wide otherwise.
type ExpenseRecord struct {
	shared.BaseAggregateRoot
	PropertyID  *uuid.UUID // Nil for portfolio-level costs
	Category    ExpenseCategory
	Amount      decimal.Decimal
	Description string
	IncurredAt  time.Time
}

// NewExpenseRecord creates a new expense ledger entry
func NewExpenseRecord(
	propertyID *uuid.UUID,
	category ExpenseCategory,
	amount valueobject.Money,
	description string,
	incurredAt time.Time,
) (*ExpenseRecord, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if incurredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Incurred date cannot be empty")
	}

	expense := &ExpenseRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Category:          category,
		Amount:            amount.Amount(),
		Description:       description,
		IncurredAt:        incurredAt,
	}
	expense.AddDomainEvent(NewExpenseRecordedEvent(expense))
	return expense, nil
}

// Update corrects the entry's details
func (e *ExpenseRecord) Update(
	category ExpenseCategory,
	amount valueobject.Money,
	description string,
	incurredAt time.Time,
) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Expense category is not valid: %s", category))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if incurredAt.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Incurred date cannot be empty")
	}

	e.Category = category
	e.Amount = amount.Amount()
	e.Description = description
	e.IncurredAt = incurredAt
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// GetAmountMoney returns the amount as a Money value object
func (e *ExpenseRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyKES(e.Amount)
}
