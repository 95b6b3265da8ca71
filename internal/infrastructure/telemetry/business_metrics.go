package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics records domain-level counters for the back office:
// payments, generated documents, dispatched reminders, and ledger entries.
type BusinessMetrics struct {
	logger *zap.Logger

	paymentsRecorded    metric.Int64Counter
	documentsGenerated  metric.Int64Counter
	documentsDispatched metric.Int64Counter
	remindersSent       metric.Int64Counter
	expensesRecorded    metric.Int64Counter
}

// NewBusinessMetrics creates business metrics instruments on the meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	bm := &BusinessMetrics{logger: logger}

	var err error

	bm.paymentsRecorded, err = meter.Int64Counter(
		"kejaplus.payments.recorded",
		metric.WithDescription("Rent payments recorded"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payments counter: %w", err)
	}

	bm.documentsGenerated, err = meter.Int64Counter(
		"kejaplus.documents.generated",
		metric.WithDescription("Invoices and receipts generated"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create documents counter: %w", err)
	}

	bm.documentsDispatched, err = meter.Int64Counter(
		"kejaplus.documents.dispatched",
		metric.WithDescription("Invoices and receipts sent to tenants"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatched documents counter: %w", err)
	}

	bm.remindersSent, err = meter.Int64Counter(
		"kejaplus.reminders.sent",
		metric.WithDescription("Rent reminders dispatched"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminders counter: %w", err)
	}

	bm.expensesRecorded, err = meter.Int64Counter(
		"kejaplus.expenses.recorded",
		metric.WithDescription("Expense ledger entries recorded"),
		metric.WithUnit("{expense}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expenses counter: %w", err)
	}

	return bm, nil
}

// RecordPayment counts a recorded rent payment
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, method string, late bool) {
	status := "paid_on_time"
	if late {
		status = "paid_late"
	}
	bm.paymentsRecorded.Add(ctx, 1,
		metric.WithAttributes(
			AttrPaymentMethod.String(method),
			AttrPaymentStatus.String(status),
		))
}

// RecordDocumentGenerated counts a generated invoice or receipt
func (bm *BusinessMetrics) RecordDocumentGenerated(ctx context.Context, documentType string) {
	bm.documentsGenerated.Add(ctx, 1,
		metric.WithAttributes(AttrDocumentType.String(documentType)))
}

// RecordDocumentDispatched counts a document send attempt with its outcome
func (bm *BusinessMetrics) RecordDocumentDispatched(ctx context.Context, documentType, channel string, delivered bool) {
	outcome := "failed"
	if delivered {
		outcome = "delivered"
	}
	bm.documentsDispatched.Add(ctx, 1,
		metric.WithAttributes(
			AttrDocumentType.String(documentType),
			AttrReminderChannel.String(channel),
			attribute.String("outcome", outcome),
		))
}

// RecordReminderSent counts a dispatched reminder with its outcome
func (bm *BusinessMetrics) RecordReminderSent(ctx context.Context, channel, outcome string) {
	bm.remindersSent.Add(ctx, 1,
		metric.WithAttributes(
			AttrReminderChannel.String(channel),
			attribute.String("outcome", outcome),
		))
}

// RecordExpense counts a recorded expense ledger entry
func (bm *BusinessMetrics) RecordExpense(ctx context.Context, category string) {
	bm.expensesRecorded.Add(ctx, 1,
		metric.WithAttributes(AttrExpenseCategory.String(category)))
}
