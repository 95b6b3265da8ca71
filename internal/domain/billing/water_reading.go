package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WaterMeterReading is the metered water usage for one billing period.
// It is a value object owned by the RentPayment aggregate and stored as
// a JSONB column; exactly one reading may exist per period.
type WaterMeterReading struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	ReadingDate     time.Time       `json:"reading_date"`
	PreviousImage   string          `json:"previous_image,omitempty"` // Storage reference, optional
	CurrentImage    string          `json:"current_image,omitempty"`  // Storage reference, optional
}

// NewWaterMeterReading creates a validated meter reading.
// Zero usage (current == previous) is valid; a current reading below the
// previous one is rejected, never clamped.
func NewWaterMeterReading(previous, current decimal.Decimal, readingDate time.Time) (*WaterMeterReading, error) {
	if previous.IsNegative() {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidReading, "Previous reading cannot be negative")
	}
	if current.IsNegative() {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidReading, "Current reading cannot be negative")
	}
	if current.LessThan(previous) {
		return nil, shared.ErrInvalidReading
	}

	return &WaterMeterReading{
		PreviousReading: previous,
		CurrentReading:  current,
		ReadingDate:     readingDate,
	}, nil
}

// WithImages attaches before/after meter photo references
func (r *WaterMeterReading) WithImages(previousImage, currentImage string) *WaterMeterReading {
	r.PreviousImage = previousImage
	r.CurrentImage = currentImage
	return r
}

// Usage returns the metered consumption for the period
func (r *WaterMeterReading) Usage() decimal.Decimal {
	return r.CurrentReading.Sub(r.PreviousReading)
}

// Value implements driver.Valuer for GORM to store as JSONB
func (r WaterMeterReading) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (r *WaterMeterReading) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan WaterMeterReading: unsupported type")
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, r)
}
