package property

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyType classifies a property
type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeBungalow   PropertyType = "BUNGALOW"
	PropertyTypeMaisonette PropertyType = "MAISONETTE"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
	PropertyTypeMixedUse   PropertyType = "MIXED_USE"
)

// IsValid checks if the property type is valid
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeBungalow, PropertyTypeMaisonette,
		PropertyTypeCommercial, PropertyTypeMixedUse:
		return true
	}
	return false
}

// String returns the string representation of PropertyType
func (t PropertyType) String() string {
	return string(t)
}

// Manager is a contact responsible for the day-to-day running of a property.
// Stored as a value object within the Property aggregate (JSONB column).
type Manager struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Managers is a slice of Manager that implements GORM Scanner/Valuer for JSONB storage
type Managers []Manager

// Value implements driver.Valuer for GORM to store as JSONB
func (m Managers) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (m *Managers) Scan(value interface{}) error {
	if value == nil {
		*m = Managers{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Managers: unsupported type")
	}
	if len(bytes) == 0 {
		*m = Managers{}
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// StringList is a set of short strings (amenities, nearby facilities)
// stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer for GORM to store as JSONB
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList: unsupported type")
	}
	if len(bytes) == 0 {
		*s = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Contains reports whether the list holds the given entry
func (s StringList) Contains(entry string) bool {
	for _, e := range s {
		if e == entry {
			return true
		}
	}
	return false
}

// Property is the aggregate root for a managed property.
// Occupancy figures are derived from active leases; the fields here are a
// cached snapshot, never the source of truth.
type Property struct {
	shared.BaseAggregateRoot
	Name             string
	Location         string
	Type             PropertyType
	Units            int             // Total rentable units
	RentAmount       decimal.Decimal // Monthly rent per unit
	AcquisitionDate  time.Time
	Amenities        StringList
	NearbyFacilities StringList
	Managers         Managers
	OccupiedUnits    int             // Cached snapshot
	OccupancyRate    decimal.Decimal // Cached snapshot, fraction in [0,1]
	SnapshotAt       *time.Time      // When the occupancy snapshot was computed
}

// NewProperty creates a new property with validation
func NewProperty(
	name string,
	location string,
	propertyType PropertyType,
	units int,
	rentAmount valueobject.Money,
	acquisitionDate time.Time,
) (*Property, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if location == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Property location cannot be empty")
	}
	if !propertyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
	}
	if units < 1 {
		return nil, shared.NewDomainError("INVALID_UNITS", "Property must have at least one unit")
	}
	if !rentAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent amount must be positive")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
		Type:              propertyType,
		Units:             units,
		RentAmount:        rentAmount.Amount(),
		AcquisitionDate:   acquisitionDate,
		Amenities:         StringList{},
		NearbyFacilities:  StringList{},
		Managers:          Managers{},
		OccupancyRate:     decimal.Zero,
	}, nil
}

// GetRentMoney returns the per-unit rent as a Money value object
func (p *Property) GetRentMoney() valueobject.Money {
	return valueobject.NewMoneyKES(p.RentAmount)
}

// SetAmenities replaces the amenity set
func (p *Property) SetAmenities(amenities []string) {
	p.Amenities = StringList(amenities)
	p.UpdatedAt = time.Now()
}

// SetNearbyFacilities replaces the nearby-facility set
func (p *Property) SetNearbyFacilities(facilities []string) {
	p.NearbyFacilities = StringList(facilities)
	p.UpdatedAt = time.Now()
}

// AddManager attaches a manager contact to the property
func (p *Property) AddManager(name, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_MANAGER", "Manager name cannot be empty")
	}
	p.Managers = append(p.Managers, Manager{Name: name, Phone: phone})
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates mutable property fields with validation
func (p *Property) UpdateDetails(name, location string, units int, rentAmount valueobject.Money) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if location == "" {
		return shared.NewDomainError("INVALID_LOCATION", "Property location cannot be empty")
	}
	if units < 1 {
		return shared.NewDomainError("INVALID_UNITS", "Property must have at least one unit")
	}
	if !rentAmount.IsPositive() {
		return shared.NewDomainError("INVALID_RENT", "Rent amount must be positive")
	}

	p.Name = name
	p.Location = location
	p.Units = units
	p.RentAmount = rentAmount.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// RefreshOccupancySnapshot caches the occupancy figures computed from leases.
// occupied is clamped to the unit count; the rate is a fraction in [0,1].
func (p *Property) RefreshOccupancySnapshot(occupied int, at time.Time) error {
	if occupied < 0 {
		return shared.NewDomainError("INVALID_OCCUPANCY", "Occupied unit count cannot be negative")
	}
	if occupied > p.Units {
		occupied = p.Units
	}
	p.OccupiedUnits = occupied
	p.OccupancyRate = decimal.NewFromInt(int64(occupied)).Div(decimal.NewFromInt(int64(p.Units)))
	p.SnapshotAt = &at
	p.UpdatedAt = time.Now()
	return nil
}
