package billing

import (
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Default tariff figures, overridable through configuration.
var (
	defaultWaterUnitRate = decimal.NewFromInt(100) // KES per metered unit
	defaultGarbageFee    = decimal.NewFromInt(500) // Flat monthly collection fee
)

// Tariff carries the per-unit utility rate and the fixed fees applied to
// every billing period. It is a value object; billing calculations take it
// as an explicit input so that per-property overrides stay possible.
type Tariff struct {
	WaterUnitRate decimal.Decimal
	GarbageFee    decimal.Decimal
}

// NewTariff creates a tariff with validation
func NewTariff(waterUnitRate, garbageFee decimal.Decimal) (Tariff, error) {
	if waterUnitRate.IsNegative() {
		return Tariff{}, shared.NewDomainError("INVALID_TARIFF", "Water unit rate cannot be negative")
	}
	if garbageFee.IsNegative() {
		return Tariff{}, shared.NewDomainError("INVALID_TARIFF", "Garbage fee cannot be negative")
	}
	return Tariff{WaterUnitRate: waterUnitRate, GarbageFee: garbageFee}, nil
}

// DefaultTariff returns the system default tariff
func DefaultTariff() Tariff {
	return Tariff{
		WaterUnitRate: defaultWaterUnitRate,
		GarbageFee:    defaultGarbageFee,
	}
}

// WaterUnitRateMoney returns the unit rate as Money
func (t Tariff) WaterUnitRateMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.WaterUnitRate)
}

// GarbageFeeMoney returns the fixed garbage fee as Money
func (t Tariff) GarbageFeeMoney() valueobject.Money {
	return valueobject.NewMoneyKES(t.GarbageFee)
}
