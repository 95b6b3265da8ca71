package document

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/kejaplus/backend/internal/infrastructure/notification"
	"github.com/kejaplus/backend/internal/infrastructure/printing"
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

// fakeRenderer returns canned PDF bytes without a browser
type fakeRenderer struct {
	err      error
	calls    int
	lastHTML string
}

func (f *fakeRenderer) Render(ctx context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	f.calls++
	f.lastHTML = req.HTML
	if f.err != nil {
		return nil, f.err
	}
	return &printing.RenderResult{PDFData: []byte("%PDF-1.4 fake")}, nil
}

func (f *fakeRenderer) Close() error {
	return nil
}

// fakeStorage records stored documents in memory
type fakeStorage struct {
	stored []printing.StoreRequest
	err    error
}

func (f *fakeStorage) Store(ctx context.Context, req *printing.StoreRequest) (*printing.StoreResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.stored = append(f.stored, *req)
	path := req.Kind + "/" + req.Number + ".pdf"
	return &printing.StoreResult{
		Path: path,
		URL:  "/api/v1/documents/files/" + path,
		Size: int64(len(req.PDFData)),
	}, nil
}

func (f *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	return nil
}

func (f *fakeStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	return 0, nil
}

func (f *fakeStorage) GetURL(path string) string {
	return "/api/v1/documents/files/" + path
}

// fakeNotifier records sends and fails on demand
type fakeNotifier struct {
	mu      sync.Mutex
	channel string
	fail    error
	sent    []notification.Message
}

func (f *fakeNotifier) Send(ctx context.Context, msg notification.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeNotifier) Channel() string {
	return f.channel
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
