package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/kejaplus/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRentPayment(t *testing.T, tenantID, propertyID uuid.UUID, dueDate time.Time) *billing.RentPayment {
	t.Helper()

	rp, err := billing.NewRentPayment(
		tenantID,
		propertyID,
		"A1",
		"Wanjiku Kamau",
		"Makazi Court",
		dueDate,
		valueobject.NewMoneyKES(decimal.NewFromInt(25000)),
	)
	require.NoError(t, err)
	return rp
}

// TestRentPaymentRepository_Integration tests the RentPaymentRepository against a real PostgreSQL database
func TestRentPaymentRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormRentPaymentRepository(testDB.DB)
	ctx := context.Background()

	tenantID := uuid.New()
	propertyID := uuid.New()
	marchDue := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("Save and FindByID with water reading", func(t *testing.T) {
		rp := newRentPayment(t, tenantID, propertyID, marchDue)
		reading, err := billing.NewWaterMeterReading(
			decimal.NewFromInt(120), decimal.NewFromInt(132),
			time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, rp.RecordWaterReading(reading))

		require.NoError(t, repo.Save(ctx, rp))

		found, err := repo.FindByID(ctx, rp.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tenantID, found.TenantID)
		assert.Equal(t, "Makazi Court", found.PropertyName)
		assert.True(t, found.RentAmount.Equal(decimal.NewFromInt(25000)))
		require.NotNil(t, found.WaterReading)
		assert.True(t, found.WaterReading.Usage().Equal(decimal.NewFromInt(12)))
		assert.False(t, found.IsPaid())
	})

	t.Run("FindByPeriod enforces one period per due date lookup", func(t *testing.T) {
		found, err := repo.FindByPeriod(ctx, tenantID, marchDue)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.PeriodDueDate.Equal(marchDue))

		missing, err := repo.FindByPeriod(ctx, tenantID, marchDue.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("FindOutstanding and FindOverdue", func(t *testing.T) {
		aprilDue := marchDue.AddDate(0, 1, 0)
		april := newRentPayment(t, tenantID, propertyID, aprilDue)
		require.NoError(t, repo.Save(ctx, april))

		// Both periods unpaid; only March is past due mid-April
		asOf := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

		outstanding, err := repo.FindOutstanding(ctx, asOf, billing.RentPaymentFilter{TenantID: &tenantID})
		require.NoError(t, err)
		assert.Len(t, outstanding, 2)

		overdue, err := repo.FindOverdue(ctx, asOf, billing.RentPaymentFilter{TenantID: &tenantID})
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.True(t, overdue[0].PeriodDueDate.Equal(marchDue))

		pending, err := repo.FindPending(ctx, asOf, billing.RentPaymentFilter{TenantID: &tenantID})
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.True(t, pending[0].PeriodDueDate.Equal(aprilDue))

		// Totals match the status predicates, not the whole set
		overdueCount, err := repo.CountOverdue(ctx, asOf, billing.RentPaymentFilter{TenantID: &tenantID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), overdueCount)

		pendingCount, err := repo.CountPending(ctx, asOf, billing.RentPaymentFilter{TenantID: &tenantID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), pendingCount)
	})

	t.Run("Paid periods leave the outstanding set", func(t *testing.T) {
		rp, err := repo.FindByPeriod(ctx, tenantID, marchDue)
		require.NoError(t, err)
		require.NotNil(t, rp)

		paymentDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		require.NoError(t, rp.RecordPayment(paymentDate, billing.PaymentMethodMpesa))
		require.NoError(t, repo.SaveWithLock(ctx, rp))

		asOf := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		outstanding, err := repo.FindOutstanding(ctx, asOf, billing.RentPaymentFilter{TenantID: &tenantID})
		require.NoError(t, err)
		require.Len(t, outstanding, 1)
		assert.True(t, outstanding[0].PeriodDueDate.Equal(marchDue.AddDate(0, 1, 0)))

		paid, err := repo.FindPaidBetween(ctx,
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, paid, 1)
		assert.True(t, paid[0].IsPaid())
		assert.Equal(t, billing.PaymentMethodMpesa, paid[0].PaymentMethod)
	})

	t.Run("SaveWithLock rejects stale versions", func(t *testing.T) {
		first, err := repo.FindByPeriod(ctx, tenantID, marchDue.AddDate(0, 1, 0))
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, second)

		reading, err := billing.NewWaterMeterReading(
			decimal.NewFromInt(132), decimal.NewFromInt(140), time.Now())
		require.NoError(t, err)
		require.NoError(t, first.RecordWaterReading(reading))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		// Second copy still carries the old version
		require.NoError(t, second.RecordPayment(time.Now(), billing.PaymentMethodCash))
		err = repo.SaveWithLock(ctx, second)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "VERSION_CONFLICT", domainErr.Code)
	})

	t.Run("Count with paid filter", func(t *testing.T) {
		paid := true
		count, err := repo.Count(ctx, billing.RentPaymentFilter{TenantID: &tenantID, Paid: &paid})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("FindDueBetween", func(t *testing.T) {
		results, err := repo.FindDueBetween(ctx,
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, results[0].PeriodDueDate.Equal(marchDue))
	})
}
