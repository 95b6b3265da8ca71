package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/finance"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/report"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a built report stays valid in the cache
const DefaultCacheTTL = 15 * time.Minute

// ReportCache is the caching port for built reports. A cache failure is
// never fatal; the aggregator degrades to recomputing.
type ReportCache interface {
	Get(ctx context.Context, key string) (*report.FinancialReport, error)
	Set(ctx context.Context, key string, r *report.FinancialReport, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// AggregationService builds the twelve-month financial report from the
// billing, document, expense, and occupancy data.
type AggregationService struct {
	rentPaymentRepo billing.RentPaymentRepository
	invoiceRepo     document.InvoiceRepository
	receiptRepo     document.ReceiptRepository
	reminderRepo    document.ReminderRepository
	expenseRepo     finance.ExpenseRepository
	propertyRepo    property.PropertyRepository
	tenantRepo      tenancy.TenantRepository
	cache           ReportCache
	cacheTTL        time.Duration
	tariff          billing.Tariff
	logger          *zap.Logger
	now             func() time.Time
}

// AggregationServiceOption configures an AggregationService
type AggregationServiceOption func(*AggregationService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) AggregationServiceOption {
	return func(s *AggregationService) {
		s.logger = logger
	}
}

// WithCache sets the report cache
func WithCache(cache ReportCache, ttl time.Duration) AggregationServiceOption {
	return func(s *AggregationService) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithTariff overrides the default tariff
func WithTariff(tariff billing.Tariff) AggregationServiceOption {
	return func(s *AggregationService) {
		s.tariff = tariff
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) AggregationServiceOption {
	return func(s *AggregationService) {
		s.now = now
	}
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	rentPaymentRepo billing.RentPaymentRepository,
	invoiceRepo document.InvoiceRepository,
	receiptRepo document.ReceiptRepository,
	reminderRepo document.ReminderRepository,
	expenseRepo finance.ExpenseRepository,
	propertyRepo property.PropertyRepository,
	tenantRepo tenancy.TenantRepository,
	opts ...AggregationServiceOption,
) *AggregationService {
	s := &AggregationService{
		rentPaymentRepo: rentPaymentRepo,
		invoiceRepo:     invoiceRepo,
		receiptRepo:     receiptRepo,
		reminderRepo:    reminderRepo,
		expenseRepo:     expenseRepo,
		propertyRepo:    propertyRepo,
		tenantRepo:      tenantRepo,
		cacheTTL:        DefaultCacheTTL,
		tariff:          billing.DefaultTariff(),
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildFinancialReport assembles the report for the twelve months ending
// at the current month, portfolio-wide or scoped to one property.
func (s *AggregationService) BuildFinancialReport(ctx context.Context, propertyID *uuid.UUID) (*report.FinancialReport, error) {
	now := s.now()
	key := cacheKey(propertyID, now)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("report cache read failed, recomputing", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	window, err := report.NewMonthWindow(now)
	if err != nil {
		return nil, err
	}

	result := &report.FinancialReport{
		PropertyID:  propertyID,
		GeneratedAt: now,
		WindowStart: window.Start(),
		WindowEnd:   window.End(),
	}
	labels := window.Labels()
	for i := 0; i < report.BucketCount; i++ {
		result.CashFlow[i].Month = labels[i]
		result.PaymentTrends[i].Month = labels[i]
		result.DocumentTrends[i].Month = labels[i]
		result.Occupancy[i].Month = labels[i]
	}

	if err := s.fillPayments(ctx, result, window, propertyID); err != nil {
		return nil, err
	}
	expenseTotals, err := s.fillExpenses(ctx, result, window, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.fillDocumentTrends(ctx, result, window); err != nil {
		return nil, err
	}
	if err := s.fillOccupancy(ctx, result, window, propertyID); err != nil {
		return nil, err
	}
	s.fillProfitability(result, expenseTotals)
	if err := s.fillCollectionRate(ctx, result, window, propertyID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// InvalidateCache drops the cached report for the scope
func (s *AggregationService) InvalidateCache(ctx context.Context, propertyID *uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, cacheKey(propertyID, s.now()))
}

func cacheKey(propertyID *uuid.UUID, now time.Time) string {
	scope := "portfolio"
	if propertyID != nil {
		scope = propertyID.String()
	}
	return fmt.Sprintf("report:financial:%s:%s", scope, now.Format("200601"))
}

// fillPayments buckets paid periods into cash inflow, the on-time/late
// trend, and the average payment delay.
func (s *AggregationService) fillPayments(ctx context.Context, result *report.FinancialReport, window report.MonthWindow, propertyID *uuid.UUID) error {
	paid, err := s.rentPaymentRepo.FindPaidBetween(ctx, window.Start(), window.End())
	if err != nil {
		return err
	}

	var lateDaysTotal int64
	var paidCount int64
	for i := range paid {
		rp := &paid[i]
		if propertyID != nil && rp.PropertyID != *propertyID {
			continue
		}
		bucket, ok := window.Index(*rp.PaymentDate)
		if !ok {
			continue
		}

		amount, err := s.periodTotal(rp)
		if err != nil {
			return err
		}
		result.CashFlow[bucket].Inflow = result.CashFlow[bucket].Inflow.Add(amount)
		result.Summary.TotalInflow = result.Summary.TotalInflow.Add(amount)
		result.Occupancy[bucket].Revenue = result.Occupancy[bucket].Revenue.Add(amount)

		if rp.IsLate() {
			result.PaymentTrends[bucket].Late++
		} else {
			result.PaymentTrends[bucket].OnTime++
		}
		lateDaysTotal += int64(rp.LateDays())
		paidCount++
	}

	if paidCount > 0 {
		result.Summary.AveragePaymentDays = decimal.NewFromInt(lateDaysTotal).
			Div(decimal.NewFromInt(paidCount)).Round(2)
	}
	return nil
}

// fillExpenses buckets ledger entries into cash outflow and returns the
// per-category totals for the breakdown and profitability figures.
func (s *AggregationService) fillExpenses(ctx context.Context, result *report.FinancialReport, window report.MonthWindow, propertyID *uuid.UUID) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	expenses, err := s.expenseRepo.FindIncurredBetween(ctx, window.Start(), window.End(), propertyID)
	if err != nil {
		return nil, err
	}

	categoryTotals := make(map[finance.ExpenseCategory]decimal.Decimal)
	breakdownTotals := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		bucket, ok := window.Index(expense.IncurredAt)
		if !ok {
			continue
		}
		result.CashFlow[bucket].Outflow = result.CashFlow[bucket].Outflow.Add(expense.Amount)
		result.Summary.TotalOutflow = result.Summary.TotalOutflow.Add(expense.Amount)
		categoryTotals[expense.Category] = categoryTotals[expense.Category].Add(expense.Amount)
		display := expense.Category.DisplayName()
		breakdownTotals[display] = breakdownTotals[display].Add(expense.Amount)
	}

	result.Summary.NetCashFlow = result.Summary.TotalInflow.Sub(result.Summary.TotalOutflow)
	result.ExpenseBreakdown = report.ComputeExpenseBreakdown(breakdownTotals)
	return categoryTotals, nil
}

// fillDocumentTrends counts generated documents per month bucket
func (s *AggregationService) fillDocumentTrends(ctx context.Context, result *report.FinancialReport, window report.MonthWindow) error {
	for i := 0; i < report.BucketCount; i++ {
		from := window.BucketStart(i)
		to := from.AddDate(0, 1, 0)

		invoices, err := s.invoiceRepo.CountIssuedBetween(ctx, from, to)
		if err != nil {
			return err
		}
		receipts, err := s.receiptRepo.CountIssuedBetween(ctx, from, to)
		if err != nil {
			return err
		}
		reminders, err := s.reminderRepo.CountCreatedBetween(ctx, from, to)
		if err != nil {
			return err
		}

		result.DocumentTrends[i].Invoices = invoices
		result.DocumentTrends[i].Receipts = receipts
		result.DocumentTrends[i].Reminders = reminders
		result.DocumentCounts.Invoices += invoices
		result.DocumentCounts.Receipts += receipts
		result.DocumentCounts.Reminders += reminders
	}
	return nil
}

// fillOccupancy computes per-month occupancy rates from the leases active
// at each bucket end, and derives revenue per occupied unit.
func (s *AggregationService) fillOccupancy(ctx context.Context, result *report.FinancialReport, window report.MonthWindow, propertyID *uuid.UUID) error {
	properties, err := s.scopedProperties(ctx, propertyID)
	if err != nil {
		return err
	}

	totalUnits := 0
	for i := range properties {
		totalUnits += properties[i].Units
	}
	if totalUnits == 0 {
		return nil
	}

	for i := 0; i < report.BucketCount; i++ {
		at := window.BucketStart(i).AddDate(0, 1, 0).Add(-time.Second)
		occupied := int64(0)
		for j := range properties {
			count, err := s.tenantRepo.CountActiveLeases(ctx, properties[j].ID, at)
			if err != nil {
				return err
			}
			occupied += count
		}

		rate := decimal.NewFromInt(occupied).Div(decimal.NewFromInt(int64(totalUnits)))
		if rate.GreaterThan(decimal.NewFromInt(1)) {
			rate = decimal.NewFromInt(1)
		}
		result.Occupancy[i].Rate = rate
		result.Occupancy[i].RevenuePerUnit = report.RevenuePerUnit(result.Occupancy[i].Revenue, rate)
	}
	return nil
}

func (s *AggregationService) scopedProperties(ctx context.Context, propertyID *uuid.UUID) ([]property.Property, error) {
	if propertyID != nil {
		p, err := s.propertyRepo.FindByID(ctx, *propertyID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
		}
		return []property.Property{*p}, nil
	}

	filter := property.PropertyFilter{Filter: shared.DefaultFilter()}
	filter.PageSize = 500
	return s.propertyRepo.FindAll(ctx, filter)
}

// fillProfitability derives margins from the window's revenue and the
// expense ledger. Maintenance and utilities count as direct costs of
// earning the rent; everything else is overhead. The invested base is the
// total spend, so ROI reads as net profit per shilling spent.
func (s *AggregationService) fillProfitability(result *report.FinancialReport, categoryTotals map[finance.ExpenseCategory]decimal.Decimal) {
	direct := categoryTotals[finance.ExpenseCategoryMaintenance].
		Add(categoryTotals[finance.ExpenseCategoryUtilities])
	overheads := result.Summary.TotalOutflow.Sub(direct)

	result.Profitability = report.ComputeProfitability(
		result.Summary.TotalInflow,
		direct,
		overheads,
		result.Summary.TotalOutflow,
	)
}

// fillCollectionRate computes paid periods over periods due in the window
func (s *AggregationService) fillCollectionRate(ctx context.Context, result *report.FinancialReport, window report.MonthWindow, propertyID *uuid.UUID) error {
	due, err := s.rentPaymentRepo.FindDueBetween(ctx, window.Start(), window.End())
	if err != nil {
		return err
	}

	var total, paid int64
	for i := range due {
		rp := &due[i]
		if propertyID != nil && rp.PropertyID != *propertyID {
			continue
		}
		total++
		if rp.IsPaid() {
			paid++
		}
	}
	result.Summary.CollectionRate = report.CollectionRate(paid, total)
	return nil
}

// periodTotal is the settled amount for a paid period: rent plus the
// metered water charge plus the flat garbage fee.
func (s *AggregationService) periodTotal(rp *billing.RentPayment) (decimal.Decimal, error) {
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
