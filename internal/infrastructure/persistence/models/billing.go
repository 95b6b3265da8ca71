package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// RentPaymentModel is the persistence model for billing periods.
// One row per tenancy per period; the meter reading is owned by the
// period and stored inline as JSONB.
type RentPaymentModel struct {
	AggregateModel
	TenantID      uuid.UUID                  `gorm:"type:uuid;not null;index;uniqueIndex:idx_rent_payments_tenant_period,priority:1"`
	PropertyID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	UnitNumber    string                     `gorm:"type:varchar(32);not null"`
	TenantName    string                     `gorm:"type:varchar(255);not null"`
	PropertyName  string                     `gorm:"type:varchar(255);not null"`
	PeriodDueDate time.Time                  `gorm:"not null;index;uniqueIndex:idx_rent_payments_tenant_period,priority:2"`
	RentAmount    decimal.Decimal            `gorm:"type:decimal(14,2);not null"`
	WaterReading  *billing.WaterMeterReading `gorm:"type:jsonb"`
	InvoiceID     *uuid.UUID                 `gorm:"type:uuid;index"`
	ReceiptID     *uuid.UUID                 `gorm:"type:uuid;index"`
	PaymentDate   *time.Time                 `gorm:"index"`
	PaymentMethod string                     `gorm:"type:varchar(32)"`
}

// TableName specifies the table name
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToDomain converts the model to a domain RentPayment
func (m *RentPaymentModel) ToDomain() *billing.RentPayment {
	return &billing.RentPayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		UnitNumber:        m.UnitNumber,
		TenantName:        m.TenantName,
		PropertyName:      m.PropertyName,
		PeriodDueDate:     m.PeriodDueDate,
		RentAmount:        m.RentAmount,
		WaterReading:      m.WaterReading,
		InvoiceID:         m.InvoiceID,
		ReceiptID:         m.ReceiptID,
		PaymentDate:       m.PaymentDate,
		PaymentMethod:     billing.PaymentMethod(m.PaymentMethod),
	}
}

// RentPaymentModelFromDomain converts a domain RentPayment to the model
func RentPaymentModelFromDomain(rp *billing.RentPayment) *RentPaymentModel {
	m := &RentPaymentModel{
		TenantID:      rp.TenantID,
		PropertyID:    rp.PropertyID,
		UnitNumber:    rp.UnitNumber,
		TenantName:    rp.TenantName,
		PropertyName:  rp.PropertyName,
		PeriodDueDate: rp.PeriodDueDate,
		RentAmount:    rp.RentAmount,
		WaterReading:  rp.WaterReading,
		InvoiceID:     rp.InvoiceID,
		ReceiptID:     rp.ReceiptID,
		PaymentDate:   rp.PaymentDate,
		PaymentMethod: rp.PaymentMethod.String(),
	}
	m.FromDomainAggregateRoot(rp.BaseAggregateRoot)
	return m
}
