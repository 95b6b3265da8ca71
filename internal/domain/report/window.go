package report

import (
	"time"

	"github.com/kejaplus/backend/internal/domain/shared"
)

// BucketCount is the fixed number of monthly buckets in every series.
// Index 0 is the oldest month, index BucketCount-1 the current month.
const BucketCount = 12

// MonthWindow is the trailing twelve calendar months ending at a
// reference instant. All report series are bucketed against one window
// so their indexes line up.
type MonthWindow struct {
	starts [BucketCount]time.Time
	end    time.Time
}

// NewMonthWindow builds the window for the month containing now.
// Months are calendar months in the given instant's location.
func NewMonthWindow(now time.Time) (MonthWindow, error) {
	if now.IsZero() {
		return MonthWindow{}, shared.ErrAggregationInput
	}

	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var w MonthWindow
	for i := 0; i < BucketCount; i++ {
		w.starts[i] = currentStart.AddDate(0, i-(BucketCount-1), 0)
	}
	w.end = currentStart.AddDate(0, 1, 0)
	return w, nil
}

// Index returns the bucket index for an instant. Instants outside the
// window are excluded, not clamped into the edge buckets.
func (w MonthWindow) Index(t time.Time) (int, bool) {
	if t.Before(w.starts[0]) || !t.Before(w.end) {
		return 0, false
	}
	for i := BucketCount - 1; i >= 0; i-- {
		if !t.Before(w.starts[i]) {
			return i, true
		}
	}
	return 0, false
}

// Start returns the inclusive start of the window
func (w MonthWindow) Start() time.Time {
	return w.starts[0]
}

// End returns the exclusive end of the window
func (w MonthWindow) End() time.Time {
	return w.end
}

// BucketStart returns the inclusive start of one bucket
func (w MonthWindow) BucketStart(i int) time.Time {
	return w.starts[i]
}

// Labels returns short month names for every bucket, oldest first
func (w MonthWindow) Labels() [BucketCount]string {
	var labels [BucketCount]string
	for i, start := range w.starts {
		labels[i] = start.Format("Jan")
	}
	return labels
}
