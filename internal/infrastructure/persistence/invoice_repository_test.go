package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"number", "rent_payment_id", "tenant_id", "property_id",
		"tenant_name", "property_name", "unit_number",
		"items", "total_due", "due_date", "status", "issued_at", "pdf_path",
	}
}

func TestGormInvoiceRepository_FindByRentPayment(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(gormDB)

	rentPaymentID := uuid.New()
	now := time.Now()
	items := `[{"description":"Monthly Rent","amount":"50000"}]`

	rows := sqlmock.NewRows(invoiceColumns()).
		AddRow(uuid.New(), now, now, 1,
			"INV-202405-000001", rentPaymentID, uuid.New(), uuid.New(),
			"John Kamau", "Sunset Apartments", "A-103",
			[]byte(items), decimal.NewFromInt(50000), now, "UNPAID", now, "")

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE rent_payment_id = \$1`).
		WithArgs(rentPaymentID, 1).
		WillReturnRows(rows)

	inv, err := repo.FindByRentPayment(context.Background(), rentPaymentID)
	require.NoError(t, err)
	assert.Equal(t, "INV-202405-000001", inv.Number)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Monthly Rent", inv.Items[0].Description)
	assert.True(t, inv.TotalDue.Equal(decimal.NewFromInt(50000)))
}

func TestGormInvoiceRepository_FindByNumber_NotFound(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE number = \$1`).
		WithArgs("INV-202405-000099", 1).
		WillReturnRows(sqlmock.NewRows(invoiceColumns()))

	inv, err := repo.FindByNumber(context.Background(), "INV-202405-000099")
	assert.NoError(t, err)
	assert.Nil(t, inv)
}

func TestGormInvoiceRepository_NextSequence(t *testing.T) {
	t.Run("starts at one for an empty month", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE number LIKE \$1`).
			WithArgs("INV-202405-%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		seq, err := repo.NextSequence(context.Background(), time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(1), seq)
	})

	t.Run("continues the month's numbering", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE number LIKE \$1`).
			WithArgs("INV-202406-%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		seq, err := repo.NextSequence(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(13), seq)
	})
}

func TestGormInvoiceRepository_CountIssuedBetween(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(gormDB)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE issued_at >= \$1 AND issued_at < \$2`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountIssuedBetween(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestGormReceiptRepository_NextSequence(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormReceiptRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "receipts" WHERE number LIKE \$1`).
		WithArgs("RCP-202405-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	seq, err := repo.NextSequence(context.Background(), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
}
