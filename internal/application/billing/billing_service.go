package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService provides application-level billing-period operations:
// opening periods, recording meter readings, and recording payments.
type BillingService struct {
	rentPaymentRepo billing.RentPaymentRepository
	tenantRepo      tenancy.TenantRepository
	propertyRepo    property.PropertyRepository
	reminderRepo    document.ReminderRepository
	tariff          billing.Tariff
	events          shared.EventPublisher
	logger          *zap.Logger
	now             func() time.Time
}

// BillingServiceOption configures a BillingService
type BillingServiceOption func(*BillingService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) BillingServiceOption {
	return func(s *BillingService) {
		s.logger = logger
	}
}

// WithTariff overrides the default tariff
func WithTariff(tariff billing.Tariff) BillingServiceOption {
	return func(s *BillingService) {
		s.tariff = tariff
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) BillingServiceOption {
	return func(s *BillingService) {
		s.now = now
	}
}

// WithEventPublisher enables domain event publication after saves
func WithEventPublisher(events shared.EventPublisher) BillingServiceOption {
	return func(s *BillingService) {
		s.events = events
	}
}

// NewBillingService creates a new BillingService
func NewBillingService(
	rentPaymentRepo billing.RentPaymentRepository,
	tenantRepo tenancy.TenantRepository,
	propertyRepo property.PropertyRepository,
	reminderRepo document.ReminderRepository,
	opts ...BillingServiceOption,
) *BillingService {
	s := &BillingService{
		rentPaymentRepo: rentPaymentRepo,
		tenantRepo:      tenantRepo,
		propertyRepo:    propertyRepo,
		reminderRepo:    reminderRepo,
		tariff:          billing.DefaultTariff(),
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenPeriodRequest opens a billing period for a tenancy
type OpenPeriodRequest struct {
	TenantID      uuid.UUID `json:"tenant_id" binding:"required"`
	PeriodDueDate time.Time `json:"period_due_date" binding:"required"`
}

// RecordReadingRequest attaches a water meter reading to a period
type RecordReadingRequest struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading" binding:"required"`
	ReadingDate     time.Time       `json:"reading_date"`
	PreviousImage   string          `json:"previous_image"`
	CurrentImage    string          `json:"current_image"`
}

// RecordPaymentRequest marks a period as paid
type RecordPaymentRequest struct {
	PaymentDate   time.Time `json:"payment_date" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
}

// RentPaymentListFilter defines filtering options for period list queries
type RentPaymentListFilter struct {
	TenantID   *uuid.UUID `form:"tenant_id"`
	PropertyID *uuid.UUID `form:"property_id"`
	Status     string     `form:"status"`
	DueFrom    *time.Time `form:"due_from"`
	DueTo      *time.Time `form:"due_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// WaterReadingDTO is the meter reading in API responses
type WaterReadingDTO struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	Usage           decimal.Decimal `json:"usage"`
	ReadingDate     time.Time       `json:"reading_date"`
}

// RentPaymentResponse represents a billing period in API responses.
// Status is resolved against the clock at response time.
type RentPaymentResponse struct {
	ID            uuid.UUID        `json:"id"`
	TenantID      uuid.UUID        `json:"tenant_id"`
	PropertyID    uuid.UUID        `json:"property_id"`
	UnitNumber    string           `json:"unit_number"`
	TenantName    string           `json:"tenant_name"`
	PropertyName  string           `json:"property_name"`
	PeriodDueDate time.Time        `json:"period_due_date"`
	RentAmount    decimal.Decimal  `json:"rent_amount"`
	WaterCharge   decimal.Decimal  `json:"water_charge"`
	GarbageFee    decimal.Decimal  `json:"garbage_fee"`
	TotalDue      decimal.Decimal  `json:"total_due"`
	Status        string           `json:"status"`
	Late          bool             `json:"late"`
	LateDays      int              `json:"late_days"`
	WaterReading  *WaterReadingDTO `json:"water_reading,omitempty"`
	InvoiceID     *uuid.UUID       `json:"invoice_id,omitempty"`
	ReceiptID     *uuid.UUID       `json:"receipt_id,omitempty"`
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int              `json:"version"`
}

// OpenPeriod opens a billing period for a tenancy. One tenancy has at
// most one period per due date.
func (s *BillingService) OpenPeriod(ctx context.Context, req OpenPeriodRequest) (*RentPaymentResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.ErrMissingBillingData
	}

	existing, err := s.rentPaymentRepo.FindByPeriod(ctx, req.TenantID, req.PeriodDueDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A billing period with this due date already exists for the tenant")
	}

	p, err := s.propertyRepo.FindByID(ctx, tenant.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrMissingBillingData
	}

	rp, err := billing.NewRentPayment(
		tenant.ID,
		tenant.PropertyID,
		tenant.UnitNumber,
		tenant.Name,
		p.Name,
		req.PeriodDueDate,
		tenant.GetRentMoney(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.rentPaymentRepo.Save(ctx, rp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rp)

	s.logger.Info("billing period opened",
		zap.String("rent_payment_id", rp.ID.String()),
		zap.String("tenant_id", rp.TenantID.String()),
		zap.Time("due_date", rp.PeriodDueDate))
	return s.toResponse(rp), nil
}

// GetPeriod gets a billing period by ID
func (s *BillingService) GetPeriod(ctx context.Context, id uuid.UUID) (*RentPaymentResponse, error) {
	rp, err := s.rentPaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Billing period not found")
	}
	return s.toResponse(rp), nil
}

// ListPeriods lists billing periods with filtering. The status filter is
// resolved against the clock, not against a stored column.
func (s *BillingService) ListPeriods(ctx context.Context, filter RentPaymentListFilter) ([]RentPaymentResponse, int64, error) {
	domainFilter := billing.RentPaymentFilter{
		Filter:     shared.DefaultFilter(),
		TenantID:   filter.TenantID,
		PropertyID: filter.PropertyID,
		DueFrom:    filter.DueFrom,
		DueTo:      filter.DueTo,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	// The total must count the same predicate the page query used, or the
	// page math is wrong for derived statuses.
	now := s.now()
	var (
		periods []billing.RentPayment
		total   int64
		err     error
	)
	switch filter.Status {
	case "":
		if periods, err = s.rentPaymentRepo.FindAll(ctx, domainFilter); err == nil {
			total, err = s.rentPaymentRepo.Count(ctx, domainFilter)
		}
	case billing.PaymentStatusPaid.String():
		paid := true
		domainFilter.Paid = &paid
		if periods, err = s.rentPaymentRepo.FindAll(ctx, domainFilter); err == nil {
			total, err = s.rentPaymentRepo.Count(ctx, domainFilter)
		}
	case billing.PaymentStatusOverdue.String():
		if periods, err = s.rentPaymentRepo.FindOverdue(ctx, now, domainFilter); err == nil {
			total, err = s.rentPaymentRepo.CountOverdue(ctx, now, domainFilter)
		}
	case billing.PaymentStatusPending.String():
		if periods, err = s.rentPaymentRepo.FindPending(ctx, now, domainFilter); err == nil {
			total, err = s.rentPaymentRepo.CountPending(ctx, now, domainFilter)
		}
	default:
		return nil, 0, shared.NewDomainError("INVALID_STATUS", "Payment status is not valid")
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RentPaymentResponse, 0, len(periods))
	for i := range periods {
		responses = append(responses, *s.toResponse(&periods[i]))
	}
	return responses, total, nil
}

// RecordReading attaches or corrects the period's water meter reading.
// Readings are frozen once an invoice has been generated.
func (s *BillingService) RecordReading(ctx context.Context, id uuid.UUID, req RecordReadingRequest) (*RentPaymentResponse, error) {
	rp, err := s.rentPaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Billing period not found")
	}

	readingDate := req.ReadingDate
	if readingDate.IsZero() {
		readingDate = s.now()
	}
	reading, err := billing.NewWaterMeterReading(req.PreviousReading, req.CurrentReading, readingDate)
	if err != nil {
		return nil, err
	}
	if req.PreviousImage != "" || req.CurrentImage != "" {
		reading = reading.WithImages(req.PreviousImage, req.CurrentImage)
	}

	if err := rp.RecordWaterReading(reading); err != nil {
		return nil, err
	}
	if err := s.rentPaymentRepo.SaveWithLock(ctx, rp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rp)
	return s.toResponse(rp), nil
}

// RecordPayment marks a period as paid and resolves its open reminders.
// Reminder resolution is best effort; a failure there does not undo the
// payment.
func (s *BillingService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*RentPaymentResponse, error) {
	rp, err := s.rentPaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Billing period not found")
	}

	method := billing.PaymentMethod(req.PaymentMethod)
	if err := rp.RecordPayment(req.PaymentDate, method); err != nil {
		return nil, err
	}
	if err := s.rentPaymentRepo.SaveWithLock(ctx, rp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rp)

	s.resolveReminders(ctx, rp.ID)

	s.logger.Info("payment recorded",
		zap.String("rent_payment_id", rp.ID.String()),
		zap.String("method", method.String()),
		zap.Bool("late", rp.IsLate()),
		zap.Int("late_days", rp.LateDays()))
	return s.toResponse(rp), nil
}

// publishEvents drains the aggregate's events onto the bus. Publication
// is best effort; the state change has already been persisted.
func (s *BillingService) publishEvents(ctx context.Context, rp *billing.RentPayment) {
	if s.events == nil {
		return
	}
	events := rp.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("rent_payment_id", rp.ID.String()),
			zap.Error(err))
	}
	rp.ClearDomainEvents()
}

func (s *BillingService) resolveReminders(ctx context.Context, rentPaymentID uuid.UUID) {
	reminders, err := s.reminderRepo.FindUnresolvedByRentPayment(ctx, rentPaymentID)
	if err != nil {
		s.logger.Warn("failed to load reminders for resolution",
			zap.String("rent_payment_id", rentPaymentID.String()),
			zap.Error(err))
		return
	}
	for _, reminder := range reminders {
		if err := reminder.MarkResolved(); err != nil {
			continue
		}
		if err := s.reminderRepo.Save(ctx, reminder); err != nil {
			s.logger.Warn("failed to resolve reminder",
				zap.String("reminder_id", reminder.ID.String()),
				zap.Error(err))
		}
	}
}

// OutstandingTotals summarizes the unpaid periods as of now
type OutstandingTotals struct {
	Count       int             `json:"count"`
	OverdueOnly int             `json:"overdue_only"`
	TotalDue    decimal.Decimal `json:"total_due"`
}

// GetOutstanding summarizes the unpaid periods, optionally scoped to a
// property.
func (s *BillingService) GetOutstanding(ctx context.Context, propertyID *uuid.UUID) (*OutstandingTotals, error) {
	now := s.now()
	filter := billing.RentPaymentFilter{Filter: shared.DefaultFilter(), PropertyID: propertyID}
	filter.PageSize = 1000

	periods, err := s.rentPaymentRepo.FindOutstanding(ctx, now, filter)
	if err != nil {
		return nil, err
	}

	totals := &OutstandingTotals{TotalDue: decimal.Zero}
	for i := range periods {
		rp := &periods[i]
		totals.Count++
		if rp.StatusAt(now) == billing.PaymentStatusOverdue {
			totals.OverdueOnly++
		}
		due, err := s.totalDue(rp)
		if err != nil {
			return nil, err
		}
		totals.TotalDue = totals.TotalDue.Add(due)
	}
	return totals, nil
}

// totalDue computes the period total from rent, the metered water charge,
// and the flat garbage fee.
func (s *BillingService) totalDue(rp *billing.RentPayment) (decimal.Decimal, error) {
	waterCharge, err := billing.ComputeUtilityCharge(rp.WaterReading, s.tariff.WaterUnitRateMoney())
	if err != nil {
		return decimal.Zero, err
	}
	total, err := billing.ComputeTotalDue(rp.GetRentMoney(), waterCharge, s.tariff.GarbageFeeMoney())
	if err != nil {
		return decimal.Zero, err
	}
	return total.Amount(), nil
}

func (s *BillingService) toResponse(rp *billing.RentPayment) *RentPaymentResponse {
	now := s.now()
	resp := &RentPaymentResponse{
		ID:            rp.ID,
		TenantID:      rp.TenantID,
		PropertyID:    rp.PropertyID,
		UnitNumber:    rp.UnitNumber,
		TenantName:    rp.TenantName,
		PropertyName:  rp.PropertyName,
		PeriodDueDate: rp.PeriodDueDate,
		RentAmount:    rp.RentAmount,
		GarbageFee:    s.tariff.GarbageFee,
		Status:        rp.StatusAt(now).String(),
		Late:          rp.IsLate(),
		LateDays:      rp.LateDays(),
		InvoiceID:     rp.InvoiceID,
		ReceiptID:     rp.ReceiptID,
		PaymentDate:   rp.PaymentDate,
		CreatedAt:     rp.CreatedAt,
		UpdatedAt:     rp.UpdatedAt,
		Version:       rp.Version,
	}
	if rp.PaymentMethod != "" {
		resp.PaymentMethod = rp.PaymentMethod.String()
	}

	waterCharge, err := billing.ComputeUtilityCharge(rp.WaterReading, s.tariff.WaterUnitRateMoney())
	if err == nil {
		resp.WaterCharge = waterCharge.Amount()
		if total, terr := billing.ComputeTotalDue(rp.GetRentMoney(), waterCharge, s.tariff.GarbageFeeMoney()); terr == nil {
			resp.TotalDue = total.Amount()
		}
	}
	if rp.WaterReading != nil {
		resp.WaterReading = &WaterReadingDTO{
			PreviousReading: rp.WaterReading.PreviousReading,
			CurrentReading:  rp.WaterReading.CurrentReading,
			Usage:           rp.WaterReading.Usage(),
			ReadingDate:     rp.WaterReading.ReadingDate,
		}
	}
	return resp
}
