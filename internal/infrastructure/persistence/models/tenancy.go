package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TenantModel is the persistence model for tenants and their leases
type TenantModel struct {
	AggregateModel
	PropertyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitNumber      string          `gorm:"type:varchar(32);not null"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Email           string          `gorm:"type:varchar(255);not null"`
	Phone           string          `gorm:"type:varchar(32)"`
	NationalID      string          `gorm:"type:varchar(32)"`
	LeaseStartDate  time.Time       `gorm:"not null"`
	LeaseEndDate    time.Time       `gorm:"not null;index"`
	RentAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	SecurityDeposit decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Occupants       int             `gorm:"not null;default:1"`
	Pets            bool            `gorm:"not null;default:false"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

// TableName specifies the table name
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain Tenant
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PropertyID:        m.PropertyID,
		UnitNumber:        m.UnitNumber,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		NationalID:        m.NationalID,
		LeaseStartDate:    m.LeaseStartDate,
		LeaseEndDate:      m.LeaseEndDate,
		RentAmount:        m.RentAmount,
		SecurityDeposit:   m.SecurityDeposit,
		Occupants:         m.Occupants,
		Pets:              m.Pets,
	}
}

// TenantModelFromDomain converts a domain Tenant to the model
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{
		PropertyID:      t.PropertyID,
		UnitNumber:      t.UnitNumber,
		Name:            t.Name,
		Email:           t.Email,
		Phone:           t.Phone,
		NationalID:      t.NationalID,
		LeaseStartDate:  t.LeaseStartDate,
		LeaseEndDate:    t.LeaseEndDate,
		RentAmount:      t.RentAmount,
		SecurityDeposit: t.SecurityDeposit,
		Occupants:       t.Occupants,
		Pets:            t.Pets,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}
