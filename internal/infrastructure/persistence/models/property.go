package models

import (
	"time"

	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropertyModel is the persistence model for properties
type PropertyModel struct {
	AggregateModel
	Name             string              `gorm:"type:varchar(255);not null;uniqueIndex"`
	Location         string              `gorm:"type:varchar(255);not null"`
	Type             string              `gorm:"type:varchar(32);not null;index"`
	Units            int                 `gorm:"not null"`
	RentAmount       decimal.Decimal     `gorm:"type:decimal(14,2);not null"`
	AcquisitionDate  time.Time           `gorm:"not null"`
	Amenities        property.StringList `gorm:"type:jsonb"`
	NearbyFacilities property.StringList `gorm:"type:jsonb"`
	Managers         property.Managers   `gorm:"type:jsonb"`
	OccupiedUnits    int                 `gorm:"not null;default:0"`
	OccupancyRate    decimal.Decimal     `gorm:"type:decimal(5,4);not null;default:0"`
	SnapshotAt       *time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Location:          m.Location,
		Type:              property.PropertyType(m.Type),
		Units:             m.Units,
		RentAmount:        m.RentAmount,
		AcquisitionDate:   m.AcquisitionDate,
		Amenities:         m.Amenities,
		NearbyFacilities:  m.NearbyFacilities,
		Managers:          m.Managers,
		OccupiedUnits:     m.OccupiedUnits,
		OccupancyRate:     m.OccupancyRate,
		SnapshotAt:        m.SnapshotAt,
	}
}

// PropertyModelFromDomain converts a domain Property to the model
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{
		Name:             p.Name,
		Location:         p.Location,
		Type:             p.Type.String(),
		Units:            p.Units,
		RentAmount:       p.RentAmount,
		AcquisitionDate:  p.AcquisitionDate,
		Amenities:        p.Amenities,
		NearbyFacilities: p.NearbyFacilities,
		Managers:         p.Managers,
		OccupiedUnits:    p.OccupiedUnits,
		OccupancyRate:    p.OccupancyRate,
		SnapshotAt:       p.SnapshotAt,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
