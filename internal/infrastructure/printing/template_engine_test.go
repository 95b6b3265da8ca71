package printing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEngine_RenderInvoice(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	view := InvoiceView{
		Number:       "INV-202405-000001",
		TenantName:   "John Kamau",
		PropertyName: "Sunset Apartments",
		UnitNumber:   "A-103",
		Lines: []InvoiceLineView{
			{Description: "Monthly rent", Amount: decimal.NewFromInt(50000)},
			{Description: "Water (50.00 units)", Amount: decimal.NewFromInt(5000)},
			{Description: "Garbage collection", Amount: decimal.NewFromInt(500)},
		},
		TotalDue: decimal.NewFromInt(55500),
		DueDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:   "UNPAID",
		IssuedAt: time.Date(2024, 4, 25, 9, 0, 0, 0, time.UTC),
	}

	html, err := engine.Render(context.Background(), TemplateInvoice, view)
	require.NoError(t, err)
	assert.Contains(t, html, "INV-202405-000001")
	assert.Contains(t, html, "John Kamau")
	assert.Contains(t, html, "KES 55500.00")
	assert.Contains(t, html, "01/05/2024")
	assert.Contains(t, html, "Garbage collection")
}

func TestTemplateEngine_RenderReceipt(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	view := ReceiptView{
		Number:          "RCP-202404-000007",
		TenantName:      "John Kamau",
		PropertyName:    "Sunset Apartments",
		AmountPaid:      decimal.NewFromInt(55500),
		PaymentDate:     time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC),
		PaymentMethod:   "MPESA",
		HasWaterFigures: true,
		PreviousReading: decimal.NewFromInt(100),
		CurrentReading:  decimal.NewFromInt(150),
		WaterCharge:     decimal.NewFromInt(5000),
		PendingBalance:  decimal.Zero,
		IssuedAt:        time.Now(),
	}

	html, err := engine.Render(context.Background(), TemplateReceipt, view)
	require.NoError(t, err)
	assert.Contains(t, html, "RCP-202404-000007")
	assert.Contains(t, html, "KES 55500.00")
	assert.Contains(t, html, "KES 0.00")
	assert.Contains(t, html, "150.00")
}

func TestTemplateEngine_UnknownTemplate(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	_, err = engine.Render(context.Background(), "statement", nil)
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "KES 1234.50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "15/05/2024", formatDate(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sunset Apartments", titleCase("sunset apartments"))
}
