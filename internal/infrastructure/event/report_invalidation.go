package event

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/finance"
	"github.com/kejaplus/backend/internal/domain/shared"
)

// ReportInvalidator drops cached financial reports for a scope.
// A nil property ID addresses the portfolio-wide report.
type ReportInvalidator interface {
	InvalidateCache(ctx context.Context, propertyID *uuid.UUID) error
}

// ReportInvalidationHandler invalidates cached financial reports when
// money moves. A recorded payment or expense changes the figures the
// report is built from, so both the affected property's report and the
// portfolio report are dropped.
type ReportInvalidationHandler struct {
	reports ReportInvalidator
	logger  *zap.Logger
}

// NewReportInvalidationHandler creates a new handler
func NewReportInvalidationHandler(reports ReportInvalidator, logger *zap.Logger) *ReportInvalidationHandler {
	return &ReportInvalidationHandler{
		reports: reports,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ReportInvalidationHandler) EventTypes() []string {
	return []string{
		billing.EventTypePaymentRecorded,
		finance.EventTypeExpenseRecorded,
	}
}

// Handle drops the cached reports affected by the event
func (h *ReportInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var propertyID *uuid.UUID

	switch e := event.(type) {
	case *billing.PaymentRecordedEvent:
		propertyID = &e.PropertyID
	case *finance.ExpenseRecordedEvent:
		propertyID = e.PropertyID
	default:
		return nil
	}

	if propertyID != nil {
		if err := h.reports.InvalidateCache(ctx, propertyID); err != nil {
			h.logger.Warn("failed to invalidate property report cache",
				zap.String("property_id", propertyID.String()),
				zap.Error(err),
			)
		}
	}

	if err := h.reports.InvalidateCache(ctx, nil); err != nil {
		h.logger.Warn("failed to invalidate portfolio report cache",
			zap.Error(err),
		)
	}

	return nil
}

// Ensure ReportInvalidationHandler implements EventHandler
var _ shared.EventHandler = (*ReportInvalidationHandler)(nil)
