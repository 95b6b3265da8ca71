package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func rentPaymentColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"tenant_id", "property_id", "unit_number", "tenant_name", "property_name",
		"period_due_date", "rent_amount", "water_reading",
		"invoice_id", "receipt_id", "payment_date", "payment_method",
	}
}

func TestGormRentPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds existing period", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormRentPaymentRepository(gormDB)

		id := uuid.New()
		tenantID := uuid.New()
		propertyID := uuid.New()
		due := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
		now := time.Now()

		rows := sqlmock.NewRows(rentPaymentColumns()).
			AddRow(id, now, now, 1,
				tenantID, propertyID, "A-103", "John Kamau", "Sunset Apartments",
				due, decimal.NewFromInt(50000), nil,
				nil, nil, nil, "")

		mock.ExpectQuery(`SELECT \* FROM "rent_payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		rp, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, rp.GetID())
		assert.Equal(t, tenantID, rp.TenantID)
		assert.Equal(t, "John Kamau", rp.TenantName)
		assert.True(t, rp.RentAmount.Equal(decimal.NewFromInt(50000)))
		assert.False(t, rp.IsPaid())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for a missing row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormRentPaymentRepository(gormDB)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "rent_payments"`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows(rentPaymentColumns()))

		rp, err := repo.FindByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Nil(t, rp)
	})
}

func TestGormRentPaymentRepository_FindByPeriod(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormRentPaymentRepository(gormDB)

	tenantID := uuid.New()
	due := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows(rentPaymentColumns()).
		AddRow(uuid.New(), now, now, 1,
			tenantID, uuid.New(), "B-204", "Grace Wanjiru", "Sunset Apartments",
			due, decimal.NewFromInt(50000), nil,
			nil, nil, nil, "")

	mock.ExpectQuery(`SELECT \* FROM "rent_payments" WHERE tenant_id = \$1 AND period_due_date = \$2`).
		WithArgs(tenantID, due, 1).
		WillReturnRows(rows)

	rp, err := repo.FindByPeriod(context.Background(), tenantID, due)
	require.NoError(t, err)
	assert.Equal(t, tenantID, rp.TenantID)
	assert.True(t, rp.PeriodDueDate.Equal(due))
}

func TestGormRentPaymentRepository_FindOverdue(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormRentPaymentRepository(gormDB)

	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	rows := sqlmock.NewRows(rentPaymentColumns()).
		AddRow(uuid.New(), now, now, 1,
			uuid.New(), uuid.New(), "A-103", "Peter Otieno", "Riverside Flats",
			time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(42000), nil,
			nil, nil, nil, "")

	mock.ExpectQuery(`SELECT \* FROM "rent_payments" WHERE payment_date IS NULL AND period_due_date < \$1`).
		WithArgs(asOf).
		WillReturnRows(rows)

	payments, err := repo.FindOverdue(context.Background(), asOf, billing.RentPaymentFilter{})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, billing.PaymentStatusOverdue, payments[0].StatusAt(asOf))
}

func TestGormRentPaymentRepository_Count(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormRentPaymentRepository(gormDB)

	propertyID := uuid.New()
	paid := true
	mock.ExpectQuery(`SELECT count\(\*\) FROM "rent_payments" WHERE property_id = \$1 AND payment_date IS NOT NULL`).
		WithArgs(propertyID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), billing.RentPaymentFilter{
		PropertyID: &propertyID,
		Paid:       &paid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestGormRentPaymentRepository_SaveWithLock(t *testing.T) {
	t.Run("rejects version conflict", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormRentPaymentRepository(gormDB)

		due := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
		rp := &billing.RentPayment{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
				Version:    3,
			},
			TenantID:      uuid.New(),
			PropertyID:    uuid.New(),
			PeriodDueDate: due,
			RentAmount:    decimal.NewFromInt(50000),
		}

		mock.ExpectBegin()
		// Stored version does not match the expected previous version
		mock.ExpectQuery(`SELECT "version" FROM "rent_payments" WHERE id = \$1`).
			WithArgs(rp.GetID(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(5))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), rp)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VERSION_CONFLICT", domainErr.Code)
	})
}
