// Package testutil provides common test utilities for the property
// management backend.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/kejaplus/backend/internal/domain/tenancy"
)

// NewTestProperty creates a valid apartment property for tests.
func NewTestProperty(t *testing.T, name string) *property.Property {
	t.Helper()

	p, err := property.NewProperty(
		name,
		"Kilimani, Nairobi",
		property.PropertyTypeApartment,
		10,
		valueobject.NewMoneyKES(decimal.NewFromInt(25000)),
		time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err, "Failed to create test property")
	return p
}

// NewTestTenant creates a tenant with a one-year lease on the given property.
func NewTestTenant(t *testing.T, p *property.Property, unitNumber string) *tenancy.Tenant {
	t.Helper()

	leaseStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tenant, err := tenancy.NewTenant(
		p.ID,
		unitNumber,
		"Wanjiku Kamau",
		"wanjiku.kamau@example.com",
		"+254712345678",
		"12345678",
		leaseStart,
		leaseStart.AddDate(1, 0, 0),
		valueobject.NewMoneyKES(p.RentAmount),
		valueobject.NewMoneyKES(p.RentAmount),
		2,
		false,
	)
	require.NoError(t, err, "Failed to create test tenant")
	return tenant
}

// NewTestRentPayment opens a billing period for the tenant on the property.
func NewTestRentPayment(t *testing.T, p *property.Property, tenant *tenancy.Tenant, dueDate time.Time) *billing.RentPayment {
	t.Helper()

	rp, err := billing.NewRentPayment(
		tenant.ID,
		p.ID,
		tenant.UnitNumber,
		tenant.Name,
		p.Name,
		dueDate,
		valueobject.NewMoneyKES(tenant.RentAmount),
	)
	require.NoError(t, err, "Failed to create test rent payment")
	return rp
}

// NewTestWaterReading creates a valid water meter reading.
func NewTestWaterReading(t *testing.T, previous, current int64, readingDate time.Time) *billing.WaterMeterReading {
	t.Helper()

	reading, err := billing.NewWaterMeterReading(
		decimal.NewFromInt(previous),
		decimal.NewFromInt(current),
		readingDate,
	)
	require.NoError(t, err, "Failed to create test water reading")
	return reading
}

// NewTestTariff creates the standard tariff used across tests.
func NewTestTariff(t *testing.T) billing.Tariff {
	t.Helper()

	tariff, err := billing.NewTariff(decimal.NewFromInt(150), decimal.NewFromInt(500))
	require.NoError(t, err, "Failed to create test tariff")
	return tariff
}
