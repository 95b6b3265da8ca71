package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/maintenance"
	"gorm.io/gorm"
)

// MaintenanceRequestModel is the persistence model for maintenance requests
type MaintenanceRequestModel struct {
	AggregateModel
	PropertyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TenantID    *uuid.UUID `gorm:"type:uuid;index"`
	UnitNumber  string     `gorm:"type:varchar(32)"`
	Description string     `gorm:"type:text;not null"`
	Status      string     `gorm:"type:varchar(16);not null;index"`
	ReportedAt  time.Time  `gorm:"not null;index"`
	ClosedAt    *time.Time
	Resolution  string         `gorm:"type:text"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the model to a domain Request
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	return &maintenance.Request{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PropertyID:        m.PropertyID,
		TenantID:          m.TenantID,
		UnitNumber:        m.UnitNumber,
		Description:       m.Description,
		Status:            maintenance.RequestStatus(m.Status),
		ReportedAt:        m.ReportedAt,
		ClosedAt:          m.ClosedAt,
		Resolution:        m.Resolution,
	}
}

// MaintenanceRequestModelFromDomain converts a domain Request to the model
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{
		PropertyID:  r.PropertyID,
		TenantID:    r.TenantID,
		UnitNumber:  r.UnitNumber,
		Description: r.Description,
		Status:      string(r.Status),
		ReportedAt:  r.ReportedAt,
		ClosedAt:    r.ClosedAt,
		Resolution:  r.Resolution,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
