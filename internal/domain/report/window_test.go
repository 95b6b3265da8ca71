package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthWindow(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	w, err := NewMonthWindow(now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), w.Start())
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), w.BucketStart(BucketCount-1))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), w.End())

	_, err = NewMonthWindow(time.Time{})
	assert.Error(t, err)
}

func TestMonthWindow_Index(t *testing.T) {
	w, err := NewMonthWindow(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	tests := []struct {
		name      string
		instant   time.Time
		wantIndex int
		wantOK    bool
	}{
		{"current month maps to last bucket", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), 11, true},
		{"first day of current month", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 11, true},
		{"previous month", time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC), 10, true},
		{"oldest month maps to first bucket", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), 0, true},
		{"before window excluded", time.Date(2023, 5, 31, 23, 59, 59, 0, time.UTC), 0, false},
		{"after window excluded", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 0, false},
		{"far future excluded", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := w.Index(tt.instant)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, idx)
			}
		})
	}
}

func TestMonthWindow_YearBoundary(t *testing.T) {
	w, err := NewMonthWindow(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), w.Start())

	idx, ok := w.Index(time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 10, idx)
}

func TestMonthWindow_Labels(t *testing.T) {
	w, err := NewMonthWindow(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	labels := w.Labels()
	assert.Equal(t, "Jun", labels[0])
	assert.Equal(t, "May", labels[11])
}
