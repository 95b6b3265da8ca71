package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Template names accepted by TemplateEngine.Render
const (
	TemplateInvoice = "invoice"
	TemplateReceipt = "receipt"
)

// InvoiceLineView is one line item on a rendered invoice
type InvoiceLineView struct {
	Description string
	Amount      decimal.Decimal
}

// InvoiceView is the data bound to the invoice template
type InvoiceView struct {
	Number       string
	TenantName   string
	PropertyName string
	UnitNumber   string
	Lines        []InvoiceLineView
	TotalDue     decimal.Decimal
	DueDate      time.Time
	Status       string
	IssuedAt     time.Time
}

// ReceiptView is the data bound to the receipt template
type ReceiptView struct {
	Number          string
	TenantName      string
	PropertyName    string
	UnitNumber      string
	AmountPaid      decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	HasWaterFigures bool
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	WaterCharge     decimal.Decimal
	PendingBalance  decimal.Decimal
	IssuedAt        time.Time
}
