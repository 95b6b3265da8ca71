package billing

import (
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
)

// ComputeUtilityCharge turns a meter reading and a per-unit rate into a
// monetary charge: (current - previous) x unitRate. A nil reading is not an
// error; many periods have no meter-billed utility and the charge is zero.
// The result is kept at full precision; callers round at presentation time.
func ComputeUtilityCharge(reading *WaterMeterReading, unitRate valueobject.Money) (valueobject.Money, error) {
	if reading == nil {
		return valueobject.Zero(unitRate.Currency()), nil
	}
	if reading.CurrentReading.LessThan(reading.PreviousReading) {
		return valueobject.Money{}, shared.ErrInvalidReading
	}
	return unitRate.Multiply(reading.Usage()), nil
}

// ComputeTotalDue sums rent, the utility charge, and any fixed fees into the
// total due for the period. All inputs must be non-negative and share a
// currency.
func ComputeTotalDue(rentAmount, utilityCharge valueobject.Money, fixedFees ...valueobject.Money) (valueobject.Money, error) {
	if rentAmount.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Rent amount cannot be negative")
	}
	if utilityCharge.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Utility charge cannot be negative")
	}

	total, err := rentAmount.Add(utilityCharge)
	if err != nil {
		return valueobject.Money{}, err
	}
	for _, fee := range fixedFees {
		if fee.IsNegative() {
			return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Fixed fee cannot be negative")
		}
		total, err = total.Add(fee)
		if err != nil {
			return valueobject.Money{}, err
		}
	}
	return total, nil
}
