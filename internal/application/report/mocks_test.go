package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/finance"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/report"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/mock"
)

type MockRentPaymentRepository struct {
	mock.Mock
}

func (m *MockRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RentPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, periodDueDate time.Time) (*billing.RentPayment, error) {
	args := m.Called(ctx, tenantID, periodDueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindAll(ctx context.Context, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindOutstanding(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	args := m.Called(ctx, asOf, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindOverdue(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	args := m.Called(ctx, asOf, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindPending(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) ([]billing.RentPayment, error) {
	args := m.Called(ctx, asOf, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindPaidBetween(ctx context.Context, from, to time.Time) ([]billing.RentPayment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]billing.RentPayment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.RentPayment), args.Error(1)
}

func (m *MockRentPaymentRepository) Save(ctx context.Context, rp *billing.RentPayment) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) SaveWithLock(ctx context.Context, rp *billing.RentPayment) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockRentPaymentRepository) Count(ctx context.Context, filter billing.RentPaymentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRentPaymentRepository) CountOverdue(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) (int64, error) {
	args := m.Called(ctx, asOf, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRentPaymentRepository) CountPending(ctx context.Context, asOf time.Time, filter billing.RentPaymentFilter) (int64, error) {
	args := m.Called(ctx, asOf, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*document.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) (*document.Invoice, error) {
	args := m.Called(ctx, rentPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter document.InvoiceFilter) (*shared.Paginated[*document.Invoice], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*document.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextSequence(ctx context.Context, period time.Time) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *document.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByNumber(ctx context.Context, number string) (*document.Receipt, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) (*document.Receipt, error) {
	args := m.Called(ctx, rentPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindAll(ctx context.Context, filter document.ReceiptFilter) (*shared.Paginated[*document.Receipt], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*document.Receipt]), args.Error(1)
}

func (m *MockReceiptRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptRepository) NextSequence(ctx context.Context, period time.Time) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *document.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) ([]*document.Reminder, error) {
	args := m.Called(ctx, rentPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindAll(ctx context.Context, filter document.ReminderFilter) (*shared.Paginated[*document.Reminder], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*document.Reminder]), args.Error(1)
}

func (m *MockReminderRepository) FindUnresolvedByRentPayment(ctx context.Context, rentPaymentID uuid.UUID) ([]*document.Reminder, error) {
	args := m.Called(ctx, rentPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Reminder), args.Error(1)
}

func (m *MockReminderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReminderRepository) Save(ctx context.Context, reminder *document.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseRecord), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) (*shared.Paginated[*finance.ExpenseRecord], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*finance.ExpenseRecord]), args.Error(1)
}

func (m *MockExpenseRepository) FindIncurredBetween(ctx context.Context, from, to time.Time, propertyID *uuid.UUID) ([]*finance.ExpenseRecord, error) {
	args := m.Called(ctx, from, to, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.ExpenseRecord), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByName(ctx context.Context, name string) (*property.Property, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter property.PropertyFilter) ([]property.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter property.PropertyFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter tenancy.TenantFilter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter tenancy.TenantFilter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActiveLeases(ctx context.Context, propertyID uuid.UUID, at time.Time) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, propertyID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) CountActiveLeases(ctx context.Context, propertyID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, propertyID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter tenancy.TenantFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// fakeReportCache is an in-memory ReportCache without expiry
type fakeReportCache struct {
	mu      sync.Mutex
	entries map[string]*report.FinancialReport
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{entries: make(map[string]*report.FinancialReport)}
}

func (c *fakeReportCache) Get(ctx context.Context, key string) (*report.FinancialReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *fakeReportCache) Set(ctx context.Context, key string, r *report.FinancialReport, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = r
	return nil
}

func (c *fakeReportCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
