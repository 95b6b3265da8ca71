package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseRecordModel is the persistence model for expense ledger entries
type ExpenseRecordModel struct {
	AggregateModel
	PropertyID  *uuid.UUID      `gorm:"type:uuid;index"`
	Category    string          `gorm:"type:varchar(32);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description string          `gorm:"type:text"`
	IncurredAt  time.Time       `gorm:"not null;index"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName specifies the table name
func (ExpenseRecordModel) TableName() string {
	return "expense_records"
}

// ToDomain converts the model to a domain ExpenseRecord
func (m *ExpenseRecordModel) ToDomain() *finance.ExpenseRecord {
	return &finance.ExpenseRecord{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PropertyID:        m.PropertyID,
		Category:          finance.ExpenseCategory(m.Category),
		Amount:            m.Amount,
		Description:       m.Description,
		IncurredAt:        m.IncurredAt,
	}
}

// ExpenseRecordModelFromDomain converts a domain ExpenseRecord to the model
func ExpenseRecordModelFromDomain(e *finance.ExpenseRecord) *ExpenseRecordModel {
	m := &ExpenseRecordModel{
		PropertyID:  e.PropertyID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Description: e.Description,
		IncurredAt:  e.IncurredAt,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
