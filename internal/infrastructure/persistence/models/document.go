package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for invoice snapshots
type InvoiceModel struct {
	AggregateModel
	Number        string             `gorm:"type:varchar(32);not null;uniqueIndex"`
	RentPaymentID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	PropertyID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	TenantName    string             `gorm:"type:varchar(255);not null"`
	PropertyName  string             `gorm:"type:varchar(255);not null"`
	UnitNumber    string             `gorm:"type:varchar(32);not null"`
	Items         document.LineItems `gorm:"type:jsonb;not null"`
	TotalDue      decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	DueDate       time.Time          `gorm:"not null"`
	Status        string             `gorm:"type:varchar(16);not null"`
	IssuedAt      time.Time          `gorm:"not null;index"`
	PdfPath       string             `gorm:"type:varchar(512)"`
}

// TableName specifies the table name
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain Invoice
func (m *InvoiceModel) ToDomain() *document.Invoice {
	return &document.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		RentPaymentID:     m.RentPaymentID,
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		TenantName:        m.TenantName,
		PropertyName:      m.PropertyName,
		UnitNumber:        m.UnitNumber,
		Items:             m.Items,
		TotalDue:          m.TotalDue,
		DueDate:           m.DueDate,
		Status:            document.InvoiceStatus(m.Status),
		IssuedAt:          m.IssuedAt,
		PdfPath:           m.PdfPath,
	}
}

// InvoiceModelFromDomain converts a domain Invoice to the model
func InvoiceModelFromDomain(inv *document.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		Number:        inv.Number,
		RentPaymentID: inv.RentPaymentID,
		TenantID:      inv.TenantID,
		PropertyID:    inv.PropertyID,
		TenantName:    inv.TenantName,
		PropertyName:  inv.PropertyName,
		UnitNumber:    inv.UnitNumber,
		Items:         inv.Items,
		TotalDue:      inv.TotalDue,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,
		PdfPath:       inv.PdfPath,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	return m
}

// ReceiptModel is the persistence model for receipt snapshots
type ReceiptModel struct {
	AggregateModel
	Number          string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	RentPaymentID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantName      string          `gorm:"type:varchar(255);not null"`
	PropertyName    string          `gorm:"type:varchar(255);not null"`
	UnitNumber      string          `gorm:"type:varchar(32);not null"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentDate     time.Time       `gorm:"not null"`
	PaymentMethod   string          `gorm:"type:varchar(32);not null"`
	HasWaterReading bool            `gorm:"not null;default:false"`
	PreviousReading decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CurrentReading  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	WaterCharge     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PendingBalance  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	IssuedAt        time.Time       `gorm:"not null;index"`
	PdfPath         string          `gorm:"type:varchar(512)"`
}

// TableName specifies the table name
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the model to a domain Receipt
func (m *ReceiptModel) ToDomain() *document.Receipt {
	return &document.Receipt{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		RentPaymentID:     m.RentPaymentID,
		InvoiceID:         m.InvoiceID,
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		TenantName:        m.TenantName,
		PropertyName:      m.PropertyName,
		UnitNumber:        m.UnitNumber,
		AmountPaid:        m.AmountPaid,
		PaymentDate:       m.PaymentDate,
		PaymentMethod:     m.PaymentMethod,
		HasWaterReading:   m.HasWaterReading,
		PreviousReading:   m.PreviousReading,
		CurrentReading:    m.CurrentReading,
		WaterCharge:       m.WaterCharge,
		PendingBalance:    m.PendingBalance,
		IssuedAt:          m.IssuedAt,
		PdfPath:           m.PdfPath,
	}
}

// ReceiptModelFromDomain converts a domain Receipt to the model
func ReceiptModelFromDomain(rc *document.Receipt) *ReceiptModel {
	m := &ReceiptModel{
		Number:          rc.Number,
		RentPaymentID:   rc.RentPaymentID,
		InvoiceID:       rc.InvoiceID,
		TenantID:        rc.TenantID,
		PropertyID:      rc.PropertyID,
		TenantName:      rc.TenantName,
		PropertyName:    rc.PropertyName,
		UnitNumber:      rc.UnitNumber,
		AmountPaid:      rc.AmountPaid,
		PaymentDate:     rc.PaymentDate,
		PaymentMethod:   rc.PaymentMethod,
		HasWaterReading: rc.HasWaterReading,
		PreviousReading: rc.PreviousReading,
		CurrentReading:  rc.CurrentReading,
		WaterCharge:     rc.WaterCharge,
		PendingBalance:  rc.PendingBalance,
		IssuedAt:        rc.IssuedAt,
		PdfPath:         rc.PdfPath,
	}
	m.FromDomainAggregateRoot(rc.BaseAggregateRoot)
	return m
}

// ReminderModel is the persistence model for reminders
type ReminderModel struct {
	AggregateModel
	RentPaymentID uuid.UUID               `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	PropertyID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	TenantName    string                  `gorm:"type:varchar(255);not null"`
	PropertyName  string                  `gorm:"type:varchar(255);not null"`
	Channel       string                  `gorm:"type:varchar(16);not null"`
	Message       string                  `gorm:"type:text;not null"`
	CustomMessage bool                    `gorm:"not null;default:false"`
	Outcome       string                  `gorm:"type:varchar(16);not null;index"`
	Results       document.ChannelResults `gorm:"type:jsonb"`
	SentAt        *time.Time
}

// TableName specifies the table name
func (ReminderModel) TableName() string {
	return "reminders"
}

// ToDomain converts the model to a domain Reminder
func (m *ReminderModel) ToDomain() *document.Reminder {
	return &document.Reminder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RentPaymentID:     m.RentPaymentID,
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		TenantName:        m.TenantName,
		PropertyName:      m.PropertyName,
		Channel:           document.ReminderChannel(m.Channel),
		Message:           m.Message,
		CustomMessage:     m.CustomMessage,
		Outcome:           document.ReminderOutcome(m.Outcome),
		Results:           m.Results,
		SentAt:            m.SentAt,
	}
}

// ReminderModelFromDomain converts a domain Reminder to the model
func ReminderModelFromDomain(rm *document.Reminder) *ReminderModel {
	m := &ReminderModel{
		RentPaymentID: rm.RentPaymentID,
		TenantID:      rm.TenantID,
		PropertyID:    rm.PropertyID,
		TenantName:    rm.TenantName,
		PropertyName:  rm.PropertyName,
		Channel:       string(rm.Channel),
		Message:       rm.Message,
		CustomMessage: rm.CustomMessage,
		Outcome:       string(rm.Outcome),
		Results:       rm.Results,
		SentAt:        rm.SentAt,
	}
	m.FromDomainAggregateRoot(rm.BaseAggregateRoot)
	return m
}
