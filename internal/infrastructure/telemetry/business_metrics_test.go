package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kejaplus/backend/internal/infrastructure/telemetry"
)

func newTestMeter(t *testing.T) *telemetry.MeterProvider {
	t.Helper()

	cfg := telemetry.MetricsConfig{
		Enabled:     false,
		ServiceName: "test-service",
	}
	mp, err := telemetry.NewMeterProvider(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return mp
}

func TestNewBusinessMetrics(t *testing.T) {
	mp := newTestMeter(t)
	defer mp.Shutdown(context.Background())

	bm, err := telemetry.NewBusinessMetrics(mp.Meter("test"), zaptest.NewLogger(t))

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_RecordersDoNotPanic(t *testing.T) {
	mp := newTestMeter(t)
	defer mp.Shutdown(context.Background())

	bm, err := telemetry.NewBusinessMetrics(mp.Meter("test"), zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx := context.Background()

	assert.NotPanics(t, func() {
		bm.RecordPayment(ctx, "MPESA", false)
		bm.RecordPayment(ctx, "BANK_TRANSFER", true)
		bm.RecordDocumentGenerated(ctx, "invoice")
		bm.RecordDocumentGenerated(ctx, "receipt")
		bm.RecordReminderSent(ctx, "EMAIL", "Sent")
		bm.RecordReminderSent(ctx, "BOTH", "Pending")
		bm.RecordExpense(ctx, "MAINTENANCE")
	})
}
