package tenancy

import (
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpiryHorizon is how close to the lease end date a lease is reported
// as expiring.
const ExpiryHorizon = 30 * 24 * time.Hour

// LeaseStatus is the derived lifecycle state of a lease. It is never
// persisted; it is recomputed from the stored dates on every read.
type LeaseStatus string

const (
	LeaseStatusActive   LeaseStatus = "ACTIVE"
	LeaseStatusExpiring LeaseStatus = "EXPIRING"
	LeaseStatusExpired  LeaseStatus = "EXPIRED"
	LeaseStatusUpcoming LeaseStatus = "UPCOMING" // Lease start date is in the future
)

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// Tenant is the aggregate root for one tenancy: the tenant's identity plus
// the lease binding them to a unit of a property.
type Tenant struct {
	shared.BaseAggregateRoot
	PropertyID      uuid.UUID
	UnitNumber      string
	Name            string
	Email           string
	Phone           string
	NationalID      string // ID or passport number
	LeaseStartDate  time.Time
	LeaseEndDate    time.Time
	RentAmount      decimal.Decimal
	SecurityDeposit decimal.Decimal
	Occupants       int
	Pets            bool
}

// NewTenant creates a new tenant with lease validation
func NewTenant(
	propertyID uuid.UUID,
	unitNumber string,
	name string,
	email string,
	phone string,
	nationalID string,
	leaseStart time.Time,
	leaseEnd time.Time,
	rentAmount valueobject.Money,
	securityDeposit valueobject.Money,
	occupants int,
	pets bool,
) (*Tenant, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if unitNumber == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Tenant email cannot be empty")
	}
	if !leaseEnd.After(leaseStart) {
		return nil, shared.NewDomainError("INVALID_LEASE_PERIOD", "Lease end date must be after lease start date")
	}
	if !rentAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent amount must be positive")
	}
	if securityDeposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Security deposit cannot be negative")
	}
	if occupants < 1 {
		return nil, shared.NewDomainError("INVALID_OCCUPANTS", "Occupant count must be at least 1")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		UnitNumber:        unitNumber,
		Name:              name,
		Email:             email,
		Phone:             phone,
		NationalID:        nationalID,
		LeaseStartDate:    leaseStart,
		LeaseEndDate:      leaseEnd,
		RentAmount:        rentAmount.Amount(),
		SecurityDeposit:   securityDeposit.Amount(),
		Occupants:         occupants,
		Pets:              pets,
	}, nil
}

// GetRentMoney returns the lease rent as a Money value object
func (t *Tenant) GetRentMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.RentAmount)
}

// GetDepositMoney returns the security deposit as a Money value object
func (t *Tenant) GetDepositMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.SecurityDeposit)
}

// LeaseStatusAt derives the lease status at the given instant.
// A lease is expiring once its end date is within ExpiryHorizon of now,
// and expired once the end date has passed.
func (t *Tenant) LeaseStatusAt(now time.Time) LeaseStatus {
	if now.Before(t.LeaseStartDate) {
		return LeaseStatusUpcoming
	}
	if now.After(t.LeaseEndDate) {
		return LeaseStatusExpired
	}
	if !t.LeaseEndDate.After(now.Add(ExpiryHorizon)) {
		return LeaseStatusExpiring
	}
	return LeaseStatusActive
}

// IsActiveAt reports whether the lease covers the given instant
func (t *Tenant) IsActiveAt(now time.Time) bool {
	status := t.LeaseStatusAt(now)
	return status == LeaseStatusActive || status == LeaseStatusExpiring
}

// RenewLease extends the lease to a new end date
func (t *Tenant) RenewLease(newEnd time.Time, rentAmount valueobject.Money) error {
	if !newEnd.After(t.LeaseEndDate) {
		return shared.NewDomainError("INVALID_LEASE_PERIOD", "New lease end date must be after the current end date")
	}
	if !rentAmount.IsPositive() {
		return shared.NewDomainError("INVALID_RENT", "Rent amount must be positive")
	}

	t.LeaseEndDate = newEnd
	t.RentAmount = rentAmount.Amount()
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// UpdateContact updates the tenant's contact details
func (t *Tenant) UpdateContact(email, phone string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Tenant email cannot be empty")
	}
	t.Email = email
	t.Phone = phone
	t.UpdatedAt = time.Now()
	return nil
}
