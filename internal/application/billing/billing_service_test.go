package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type billingServiceMocks struct {
	rentPayments *MockRentPaymentRepository
	tenants      *MockTenantRepository
	properties   *MockPropertyRepository
	reminders    *MockReminderRepository
}

func newBillingService(t *testing.T, now time.Time, opts ...BillingServiceOption) (*BillingService, *billingServiceMocks) {
	t.Helper()
	mocks := &billingServiceMocks{
		rentPayments: new(MockRentPaymentRepository),
		tenants:      new(MockTenantRepository),
		properties:   new(MockPropertyRepository),
		reminders:    new(MockReminderRepository),
	}
	opts = append(opts, WithClock(func() time.Time { return now }))
	svc := NewBillingService(mocks.rentPayments, mocks.tenants, mocks.properties, mocks.reminders, opts...)
	return svc, mocks
}

func testTenant(t *testing.T) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewTenant(
		uuid.New(),
		"A-103",
		"John Kamau",
		"john.kamau@example.com",
		"+254712345678",
		"12345678",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		valueobject.NewMoneyKESFromFloat(50000),
		valueobject.NewMoneyKESFromFloat(50000),
		2,
		false,
	)
	require.NoError(t, err)
	return tenant
}

func testPeriod(t *testing.T, dueDate time.Time) *billing.RentPayment {
	t.Helper()
	rp, err := billing.NewRentPayment(
		uuid.New(), uuid.New(), "A-103", "John Kamau", "Sunset Apartments",
		dueDate, valueobject.NewMoneyKESFromFloat(50000),
	)
	require.NoError(t, err)
	return rp
}

func newTestProperty(t *testing.T) *property.Property {
	t.Helper()
	p, err := property.NewProperty(
		"Sunset Apartments",
		"Kilimani, Nairobi",
		property.PropertyTypeApartment,
		12,
		valueobject.NewMoneyKESFromFloat(50000),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestBillingService_OpenPeriod(t *testing.T) {
	now := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)
	dueDate := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	t.Run("opens a period for the tenancy", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		tenant := testTenant(t)
		prop := newTestProperty(t)

		mocks.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		mocks.rentPayments.On("FindByPeriod", mock.Anything, tenant.ID, dueDate).Return(nil, nil)
		mocks.properties.On("FindByID", mock.Anything, tenant.PropertyID).Return(prop, nil)
		mocks.rentPayments.On("Save", mock.Anything, mock.AnythingOfType("*billing.RentPayment")).Return(nil)

		resp, err := svc.OpenPeriod(context.Background(), OpenPeriodRequest{
			TenantID:      tenant.ID,
			PeriodDueDate: dueDate,
		})

		require.NoError(t, err)
		assert.Equal(t, tenant.ID, resp.TenantID)
		assert.Equal(t, "A-103", resp.UnitNumber)
		assert.Equal(t, prop.Name, resp.PropertyName)
		assert.Equal(t, billing.PaymentStatusPending.String(), resp.Status)
		// Rent 50000 + garbage 500, no reading yet
		assert.True(t, resp.TotalDue.Equal(decimal.NewFromInt(50500)))
		mocks.rentPayments.AssertExpectations(t)
	})

	t.Run("rejects a duplicate period", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		tenant := testTenant(t)
		existing := testPeriod(t, dueDate)

		mocks.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		mocks.rentPayments.On("FindByPeriod", mock.Anything, tenant.ID, dueDate).Return(existing, nil)

		_, err := svc.OpenPeriod(context.Background(), OpenPeriodRequest{
			TenantID:      tenant.ID,
			PeriodDueDate: dueDate,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects an unknown tenant", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		mocks.tenants.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

		_, err := svc.OpenPeriod(context.Background(), OpenPeriodRequest{
			TenantID:      uuid.New(),
			PeriodDueDate: dueDate,
		})

		assert.ErrorIs(t, err, shared.ErrMissingBillingData)
	})
}

func TestBillingService_RecordReading(t *testing.T) {
	now := time.Date(2024, 4, 28, 10, 0, 0, 0, time.UTC)

	t.Run("attaches the reading and prices the water", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		rp := testPeriod(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC))

		mocks.rentPayments.On("FindByID", mock.Anything, rp.ID).Return(rp, nil)
		mocks.rentPayments.On("SaveWithLock", mock.Anything, rp).Return(nil)

		resp, err := svc.RecordReading(context.Background(), rp.ID, RecordReadingRequest{
			PreviousReading: decimal.NewFromInt(100),
			CurrentReading:  decimal.NewFromInt(150),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.WaterReading)
		assert.True(t, resp.WaterReading.Usage.Equal(decimal.NewFromInt(50)))
		// 50 units at 100/unit
		assert.True(t, resp.WaterCharge.Equal(decimal.NewFromInt(5000)))
		// 50000 + 5000 + 500
		assert.True(t, resp.TotalDue.Equal(decimal.NewFromInt(55500)))
	})

	t.Run("rejects a regressed reading", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		rp := testPeriod(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC))

		mocks.rentPayments.On("FindByID", mock.Anything, rp.ID).Return(rp, nil)

		_, err := svc.RecordReading(context.Background(), rp.ID, RecordReadingRequest{
			PreviousReading: decimal.NewFromInt(150),
			CurrentReading:  decimal.NewFromInt(100),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeInvalidReading, domainErr.Code)
	})
}

func TestBillingService_RecordPayment(t *testing.T) {
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	dueDate := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	t.Run("records the payment and resolves open reminders", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		rp := testPeriod(t, dueDate)
		reminder, err := document.NewReminder(
			rp.ID, rp.TenantID, rp.PropertyID, rp.TenantName, rp.PropertyName,
			document.ReminderChannelEmail, "pay up", false,
		)
		require.NoError(t, err)

		mocks.rentPayments.On("FindByID", mock.Anything, rp.ID).Return(rp, nil)
		mocks.rentPayments.On("SaveWithLock", mock.Anything, rp).Return(nil)
		mocks.reminders.On("FindUnresolvedByRentPayment", mock.Anything, rp.ID).
			Return([]*document.Reminder{reminder}, nil)
		mocks.reminders.On("Save", mock.Anything, reminder).Return(nil)

		resp, err := svc.RecordPayment(context.Background(), rp.ID, RecordPaymentRequest{
			PaymentDate:   time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "MPESA",
		})

		require.NoError(t, err)
		assert.Equal(t, billing.PaymentStatusPaid.String(), resp.Status)
		assert.True(t, resp.Late)
		assert.Equal(t, 5, resp.LateDays)
		assert.Equal(t, document.ReminderOutcomeResolved, reminder.Outcome)
		mocks.reminders.AssertExpectations(t)
	})

	t.Run("keeps the payment when reminder resolution fails", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		rp := testPeriod(t, dueDate)

		mocks.rentPayments.On("FindByID", mock.Anything, rp.ID).Return(rp, nil)
		mocks.rentPayments.On("SaveWithLock", mock.Anything, rp).Return(nil)
		mocks.reminders.On("FindUnresolvedByRentPayment", mock.Anything, rp.ID).
			Return(nil, errors.New("database unavailable"))

		resp, err := svc.RecordPayment(context.Background(), rp.ID, RecordPaymentRequest{
			PaymentDate:   time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "CASH",
		})

		require.NoError(t, err)
		assert.Equal(t, billing.PaymentStatusPaid.String(), resp.Status)
		assert.False(t, resp.Late)
	})

	t.Run("rejects a second payment", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		rp := testPeriod(t, dueDate)
		require.NoError(t, rp.RecordPayment(time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), billing.PaymentMethodMpesa))

		mocks.rentPayments.On("FindByID", mock.Anything, rp.ID).Return(rp, nil)

		_, err := svc.RecordPayment(context.Background(), rp.ID, RecordPaymentRequest{
			PaymentDate:   now,
			PaymentMethod: "CASH",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestBillingService_GetOutstanding(t *testing.T) {
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	svc, mocks := newBillingService(t, now)

	overdue := testPeriod(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC))
	pending := testPeriod(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	mocks.rentPayments.On("FindOutstanding", mock.Anything, now, mock.Anything).
		Return([]billing.RentPayment{*overdue, *pending}, nil)

	totals, err := svc.GetOutstanding(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, 1, totals.OverdueOnly)
	// Two periods at 50000 rent + 500 garbage each
	assert.True(t, totals.TotalDue.Equal(decimal.NewFromInt(101000)))
}

func TestBillingService_ListPeriods_DerivedStatus(t *testing.T) {
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)

	t.Run("overdue total counts the overdue predicate, not the whole set", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		overdue := testPeriod(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC))

		// Five periods exist overall; only one matches the status filter.
		mocks.rentPayments.On("FindOverdue", mock.Anything, now, mock.Anything).
			Return([]billing.RentPayment{*overdue}, nil)
		mocks.rentPayments.On("CountOverdue", mock.Anything, now, mock.Anything).
			Return(int64(1), nil)

		responses, total, err := svc.ListPeriods(context.Background(), RentPaymentListFilter{
			Status: "OVERDUE",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, billing.PaymentStatusOverdue.String(), responses[0].Status)
		mocks.rentPayments.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
	})

	t.Run("pending uses the pending predicate on query and count", func(t *testing.T) {
		svc, mocks := newBillingService(t, now)
		pending := testPeriod(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

		mocks.rentPayments.On("FindPending", mock.Anything, now, mock.Anything).
			Return([]billing.RentPayment{*pending}, nil)
		mocks.rentPayments.On("CountPending", mock.Anything, now, mock.Anything).
			Return(int64(1), nil)

		responses, total, err := svc.ListPeriods(context.Background(), RentPaymentListFilter{
			Status: "PENDING",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, billing.PaymentStatusPending.String(), responses[0].Status)
		mocks.rentPayments.AssertNotCalled(t, "FindOutstanding", mock.Anything, mock.Anything, mock.Anything)
	})
}
