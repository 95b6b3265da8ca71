package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/kejaplus/backend/internal/infrastructure/notification"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultChannelTimeout = 10 * time.Second
	defaultBulkWorkers    = 4
	// AutoReminderLeadDays is how many days before the due date the
	// scheduler sends pre-due reminders.
	AutoReminderLeadDays = 5
)

const reminderSubject = "Rent Payment Reminder"

// ReminderService creates reminders and dispatches them through the
// configured notification channels. Every dispatch attempt is recorded;
// re-sends create new reminder rows.
type ReminderService struct {
	rentPaymentRepo billing.RentPaymentRepository
	reminderRepo    document.ReminderRepository
	tenantRepo      tenancy.TenantRepository
	notifiers       map[document.ReminderChannel]notification.Notifier
	tariff          billing.Tariff
	channelTimeout  time.Duration
	bulkWorkers     int
	logger          *zap.Logger
	now             func() time.Time
}

// ReminderServiceOption configures a ReminderService
type ReminderServiceOption func(*ReminderService)

// WithReminderLogger sets the logger
func WithReminderLogger(logger *zap.Logger) ReminderServiceOption {
	return func(s *ReminderService) {
		s.logger = logger
	}
}

// WithReminderTariff overrides the default tariff
func WithReminderTariff(tariff billing.Tariff) ReminderServiceOption {
	return func(s *ReminderService) {
		s.tariff = tariff
	}
}

// WithChannelTimeout bounds each channel attempt
func WithChannelTimeout(timeout time.Duration) ReminderServiceOption {
	return func(s *ReminderService) {
		s.channelTimeout = timeout
	}
}

// WithBulkWorkers bounds the bulk dispatch concurrency
func WithBulkWorkers(workers int) ReminderServiceOption {
	return func(s *ReminderService) {
		if workers > 0 {
			s.bulkWorkers = workers
		}
	}
}

// WithReminderClock overrides the time source, used by tests
func WithReminderClock(now func() time.Time) ReminderServiceOption {
	return func(s *ReminderService) {
		s.now = now
	}
}

// NewReminderService creates a new ReminderService. The notifiers map is
// keyed by concrete channel; EMAIL and SMS each need their own entry.
func NewReminderService(
	rentPaymentRepo billing.RentPaymentRepository,
	reminderRepo document.ReminderRepository,
	tenantRepo tenancy.TenantRepository,
	notifiers map[document.ReminderChannel]notification.Notifier,
	opts ...ReminderServiceOption,
) *ReminderService {
	s := &ReminderService{
		rentPaymentRepo: rentPaymentRepo,
		reminderRepo:    reminderRepo,
		tenantRepo:      tenantRepo,
		notifiers:       notifiers,
		tariff:          billing.DefaultTariff(),
		channelTimeout:  defaultChannelTimeout,
		bulkWorkers:     defaultBulkWorkers,
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendReminderRequest dispatches one reminder for a billing period
type SendReminderRequest struct {
	RentPaymentID uuid.UUID `json:"rent_payment_id" binding:"required"`
	Channel       string    `json:"channel" binding:"required"`
	CustomMessage string    `json:"custom_message"`
}

// BulkReminderRequest dispatches reminders for every outstanding period
type BulkReminderRequest struct {
	Channel       string     `json:"channel" binding:"required"`
	PropertyID    *uuid.UUID `json:"property_id"`
	CustomMessage string     `json:"custom_message"`
	OverdueOnly   bool       `json:"overdue_only"`
}

// BulkReminderResult summarizes a bulk dispatch run
type BulkReminderResult struct {
	Candidates int `json:"candidates"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// SendReminder creates and dispatches a reminder for one billing period.
// A custom message replaces the template entirely; an empty one selects
// the standard template.
func (s *ReminderService) SendReminder(ctx context.Context, req SendReminderRequest) (*ReminderResponse, error) {
	rp, err := s.rentPaymentRepo.FindByID(ctx, req.RentPaymentID)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Billing period not found")
	}

	channel := document.ReminderChannel(req.Channel)
	reminder, err := s.dispatchForPeriod(ctx, rp, channel, req.CustomMessage)
	if err != nil {
		return nil, err
	}
	return toReminderResponse(reminder), nil
}

// dispatchForPeriod runs the full reminder flow for one period: compose,
// persist, attempt every requested channel, record the outcomes.
func (s *ReminderService) dispatchForPeriod(ctx context.Context, rp *billing.RentPayment, channel document.ReminderChannel, customMessage string) (*document.Reminder, error) {
	if rp.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot send a reminder for a paid period")
	}

	message := customMessage
	custom := customMessage != ""
	if !custom {
		total, err := s.totalDue(rp)
		if err != nil {
			return nil, err
		}
		message = document.ComposeReminderMessage(rp.TenantName, total, rp.PropertyName, rp.PeriodDueDate)
	}

	reminder, err := document.NewReminder(
		rp.ID,
		rp.TenantID,
		rp.PropertyID,
		rp.TenantName,
		rp.PropertyName,
		channel,
		message,
		custom,
	)
	if err != nil {
		return nil, err
	}
	if err := s.reminderRepo.Save(ctx, reminder); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, rp.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.ErrMissingBillingData
	}

	results := s.attemptChannels(ctx, reminder, tenant)
	if err := reminder.RecordResults(results); err != nil {
		return nil, err
	}
	if err := s.reminderRepo.Save(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("reminder dispatched",
		zap.String("reminder_id", reminder.ID.String()),
		zap.String("channel", channel.String()),
		zap.String("outcome", reminder.Outcome.String()),
		zap.Bool("partial", reminder.PartiallyDelivered()))
	return reminder, nil
}

// attemptChannels tries every requested channel. A failed sibling never
// short-circuits the remaining channels; every attempt produces a result.
func (s *ReminderService) attemptChannels(ctx context.Context, reminder *document.Reminder, tenant *tenancy.Tenant) document.ChannelResults {
	requested := reminder.RequestedChannels()
	results := make(document.ChannelResults, 0, len(requested))
	for _, channel := range requested {
		results = append(results, s.attemptOne(ctx, channel, reminder.Message, tenant))
	}
	return results
}

func (s *ReminderService) attemptOne(ctx context.Context, channel document.ReminderChannel, message string, tenant *tenancy.Tenant) document.ChannelResult {
	result := document.ChannelResult{Channel: channel, AttemptedAt: s.now()}

	notifier, ok := s.notifiers[channel]
	if !ok {
		result.Error = "channel not configured"
		return result
	}

	recipient := tenant.Email
	if channel == document.ReminderChannelSMS {
		recipient = tenant.Phone
	}
	if recipient == "" {
		result.Error = "no recipient on file"
		return result
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.channelTimeout)
	defer cancel()

	err := notifier.Send(sendCtx, notification.Message{
		Recipient: recipient,
		Subject:   reminderSubject,
		Body:      message,
	})
	if err != nil {
		result.Error = err.Error()
		s.logger.Warn("reminder channel failed",
			zap.String("channel", channel.String()),
			zap.String("tenant_id", tenant.ID.String()),
			zap.Error(err))
		return result
	}

	result.Delivered = true
	return result
}

// SendBulk dispatches reminders for every outstanding period matching the
// request, through a bounded worker pool. Cancelling the context stops
// the run between records; periods already processed keep their results.
func (s *ReminderService) SendBulk(ctx context.Context, req BulkReminderRequest) (*BulkReminderResult, error) {
	channel := document.ReminderChannel(req.Channel)
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Reminder channel is not valid")
	}

	now := s.now()
	filter := billing.RentPaymentFilter{Filter: shared.DefaultFilter(), PropertyID: req.PropertyID}
	filter.PageSize = 1000

	var (
		periods []billing.RentPayment
		err     error
	)
	if req.OverdueOnly {
		periods, err = s.rentPaymentRepo.FindOverdue(ctx, now, filter)
	} else {
		periods, err = s.rentPaymentRepo.FindOutstanding(ctx, now, filter)
	}
	if err != nil {
		return nil, err
	}

	result := &BulkReminderResult{Candidates: len(periods)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.bulkWorkers)
	for i := range periods {
		rp := &periods[i]
		if gctx.Err() != nil {
			mu.Lock()
			result.Skipped++
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			reminder, derr := s.dispatchForPeriod(gctx, rp, channel, req.CustomMessage)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case derr != nil:
				result.Failed++
				s.logger.Warn("bulk reminder failed",
					zap.String("rent_payment_id", rp.ID.String()),
					zap.Error(derr))
			case reminder.Succeeded():
				result.Sent++
			default:
				result.Failed++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	s.logger.Info("bulk reminder run finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// SendAutoReminders sends pre-due reminders for unpaid periods whose due
// date falls within the lead window from now. Periods that already carry
// an unresolved reminder are skipped. Run by the scheduler.
func (s *ReminderService) SendAutoReminders(ctx context.Context, channel document.ReminderChannel) (*BulkReminderResult, error) {
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Reminder channel is not valid")
	}

	now := s.now()
	windowEnd := now.AddDate(0, 0, AutoReminderLeadDays)
	periods, err := s.rentPaymentRepo.FindDueBetween(ctx, now, windowEnd)
	if err != nil {
		return nil, err
	}

	result := &BulkReminderResult{Candidates: len(periods)}
	for i := range periods {
		if ctx.Err() != nil {
			result.Skipped += len(periods) - i
			break
		}
		rp := &periods[i]
		if rp.IsPaid() {
			result.Skipped++
			continue
		}

		open, err := s.reminderRepo.FindUnresolvedByRentPayment(ctx, rp.ID)
		if err != nil {
			result.Failed++
			continue
		}
		if len(open) > 0 {
			result.Skipped++
			continue
		}

		reminder, err := s.dispatchForPeriod(ctx, rp, channel, "")
		switch {
		case err != nil:
			result.Failed++
		case reminder.Succeeded():
			result.Sent++
		default:
			result.Failed++
		}
	}

	s.logger.Info("auto reminder run finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// GetReminder gets a reminder by ID
func (s *ReminderService) GetReminder(ctx context.Context, id uuid.UUID) (*ReminderResponse, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Reminder not found")
	}
	return toReminderResponse(reminder), nil
}

// ListReminders lists reminders with filtering
func (s *ReminderService) ListReminders(ctx context.Context, filter document.ReminderFilter) (*shared.Paginated[*ReminderResponse], error) {
	page, err := s.reminderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*ReminderResponse, 0, len(page.Items))
	for _, reminder := range page.Items {
		responses = append(responses, toReminderResponse(reminder))
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// totalDue computes the period total for the reminder message
func (s *ReminderService) totalDue(rp *billing.RentPayment) (valueobject.Money, error) {
	waterCharge, err := billing.ComputeUtilityCharge(rp.WaterReading, s.tariff.WaterUnitRateMoney())
	if err != nil {
		return valueobject.Money{}, err
	}
	return billing.ComputeTotalDue(rp.GetRentMoney(), waterCharge, s.tariff.GarbageFeeMoney())
}
