package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/shopspring/decimal"
)

// LineItemDTO is one invoice line in API responses
type LineItemDTO struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	RentPaymentID uuid.UUID       `json:"rent_payment_id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	TenantName    string          `json:"tenant_name"`
	PropertyName  string          `json:"property_name"`
	UnitNumber    string          `json:"unit_number"`
	Items         []LineItemDTO   `json:"items"`
	TotalDue      decimal.Decimal `json:"total_due"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	IssuedAt      time.Time       `json:"issued_at"`
	PdfURL        string          `json:"pdf_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	RentPaymentID   uuid.UUID       `json:"rent_payment_id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	PropertyID      uuid.UUID       `json:"property_id"`
	TenantName      string          `json:"tenant_name"`
	PropertyName    string          `json:"property_name"`
	UnitNumber      string          `json:"unit_number"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	WaterCharge     decimal.Decimal `json:"water_charge"`
	PendingBalance  decimal.Decimal `json:"pending_balance"`
	IssuedAt        time.Time       `json:"issued_at"`
	PdfURL          string          `json:"pdf_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ChannelResultDTO is one channel's delivery outcome
type ChannelResultDTO struct {
	Channel     string    `json:"channel"`
	Delivered   bool      `json:"delivered"`
	Error       string    `json:"error,omitempty"`
	AttemptedAt time.Time `json:"attempted_at"`
}

// ReminderResponse represents a reminder in API responses
type ReminderResponse struct {
	ID                 uuid.UUID          `json:"id"`
	RentPaymentID      uuid.UUID          `json:"rent_payment_id"`
	TenantID           uuid.UUID          `json:"tenant_id"`
	PropertyID         uuid.UUID          `json:"property_id"`
	TenantName         string             `json:"tenant_name"`
	PropertyName       string             `json:"property_name"`
	Channel            string             `json:"channel"`
	Message            string             `json:"message"`
	CustomMessage      bool               `json:"custom_message"`
	Outcome            string             `json:"outcome"`
	PartiallyDelivered bool               `json:"partially_delivered"`
	Results            []ChannelResultDTO `json:"results"`
	SentAt             *time.Time         `json:"sent_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

func toInvoiceResponse(inv *document.Invoice, pdfURL string) *InvoiceResponse {
	items := make([]LineItemDTO, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, LineItemDTO{Description: item.Description, Amount: item.Amount})
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		RentPaymentID: inv.RentPaymentID,
		TenantID:      inv.TenantID,
		PropertyID:    inv.PropertyID,
		TenantName:    inv.TenantName,
		PropertyName:  inv.PropertyName,
		UnitNumber:    inv.UnitNumber,
		Items:         items,
		TotalDue:      inv.TotalDue,
		DueDate:       inv.DueDate,
		Status:        inv.Status.String(),
		IssuedAt:      inv.IssuedAt,
		PdfURL:        pdfURL,
		CreatedAt:     inv.CreatedAt,
	}
}

func toReceiptResponse(r *document.Receipt, pdfURL string) *ReceiptResponse {
	return &ReceiptResponse{
		ID:              r.ID,
		Number:          r.Number,
		RentPaymentID:   r.RentPaymentID,
		InvoiceID:       r.InvoiceID,
		TenantID:        r.TenantID,
		PropertyID:      r.PropertyID,
		TenantName:      r.TenantName,
		PropertyName:    r.PropertyName,
		UnitNumber:      r.UnitNumber,
		AmountPaid:      r.AmountPaid,
		PaymentDate:     r.PaymentDate,
		PaymentMethod:   r.PaymentMethod,
		PreviousReading: r.PreviousReading,
		CurrentReading:  r.CurrentReading,
		WaterCharge:     r.WaterCharge,
		PendingBalance:  r.PendingBalance,
		IssuedAt:        r.IssuedAt,
		PdfURL:          pdfURL,
		CreatedAt:       r.CreatedAt,
	}
}

func toReminderResponse(r *document.Reminder) *ReminderResponse {
	results := make([]ChannelResultDTO, 0, len(r.Results))
	for _, result := range r.Results {
		results = append(results, ChannelResultDTO{
			Channel:     result.Channel.String(),
			Delivered:   result.Delivered,
			Error:       result.Error,
			AttemptedAt: result.AttemptedAt,
		})
	}
	return &ReminderResponse{
		ID:                 r.ID,
		RentPaymentID:      r.RentPaymentID,
		TenantID:           r.TenantID,
		PropertyID:         r.PropertyID,
		TenantName:         r.TenantName,
		PropertyName:       r.PropertyName,
		Channel:            r.Channel.String(),
		Message:            r.Message,
		CustomMessage:      r.CustomMessage,
		Outcome:            r.Outcome.String(),
		PartiallyDelivered: r.PartiallyDelivered(),
		Results:            results,
		SentAt:             r.SentAt,
		CreatedAt:          r.CreatedAt,
	}
}
