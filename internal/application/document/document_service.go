package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/billing"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/kejaplus/backend/internal/infrastructure/notification"
	"github.com/kejaplus/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// Storage kinds for rendered documents
const (
	storageKindInvoices = "invoices"
	storageKindReceipts = "receipts"
)

// DocumentService generates invoice and receipt snapshots from billing
// periods and renders them to PDF. Document generation is authoritative;
// PDF rendering is best effort and can be retried later.
type DocumentService struct {
	rentPaymentRepo billing.RentPaymentRepository
	invoiceRepo     document.InvoiceRepository
	receiptRepo     document.ReceiptRepository
	templates       *printing.TemplateEngine
	renderer        printing.PDFRenderer
	storage         printing.PDFStorage
	tenantRepo      tenancy.TenantRepository
	notifiers       map[document.ReminderChannel]notification.Notifier
	dispatchTimeout time.Duration
	tariff          billing.Tariff
	logger          *zap.Logger
	now             func() time.Time
}

// DocumentServiceOption configures a DocumentService
type DocumentServiceOption func(*DocumentService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.logger = logger
	}
}

// WithTariff overrides the default tariff
func WithTariff(tariff billing.Tariff) DocumentServiceOption {
	return func(s *DocumentService) {
		s.tariff = tariff
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) DocumentServiceOption {
	return func(s *DocumentService) {
		s.now = now
	}
}

// WithDispatch enables sending generated documents through notification
// channels. Tenant contact details come from the tenant repository when
// the caller supplies no recipient override.
func WithDispatch(tenantRepo tenancy.TenantRepository, notifiers map[document.ReminderChannel]notification.Notifier) DocumentServiceOption {
	return func(s *DocumentService) {
		s.tenantRepo = tenantRepo
		s.notifiers = notifiers
	}
}

// WithDispatchTimeout bounds each channel attempt
func WithDispatchTimeout(timeout time.Duration) DocumentServiceOption {
	return func(s *DocumentService) {
		if timeout > 0 {
			s.dispatchTimeout = timeout
		}
	}
}

// NewDocumentService creates a new DocumentService. Renderer and storage
// may be nil, in which case documents are generated without PDFs.
func NewDocumentService(
	rentPaymentRepo billing.RentPaymentRepository,
	invoiceRepo document.InvoiceRepository,
	receiptRepo document.ReceiptRepository,
	templates *printing.TemplateEngine,
	renderer printing.PDFRenderer,
	storage printing.PDFStorage,
	opts ...DocumentServiceOption,
) *DocumentService {
	s := &DocumentService{
		rentPaymentRepo: rentPaymentRepo,
		invoiceRepo:     invoiceRepo,
		receiptRepo:     receiptRepo,
		templates:       templates,
		renderer:        renderer,
		storage:         storage,
		dispatchTimeout: defaultChannelTimeout,
		tariff:          billing.DefaultTariff(),
		logger:          zap.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateInvoice creates the invoice snapshot for a billing period.
// The period's meter reading is frozen by this operation; one period has
// at most one invoice.
func (s *DocumentService) GenerateInvoice(ctx context.Context, rentPaymentID uuid.UUID) (*InvoiceResponse, error) {
	rp, err := s.rentPaymentRepo.FindByID(ctx, rentPaymentID)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Billing period not found")
	}
	if rp.InvoiceID != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An invoice has already been generated for this period")
	}

	items, err := s.buildLineItems(rp)
	if err != nil {
		return nil, err
	}

	seq, err := s.invoiceRepo.NextSequence(ctx, rp.PeriodDueDate)
	if err != nil {
		return nil, err
	}

	inv, err := document.NewInvoice(
		document.InvoiceNumber(rp.PeriodDueDate, seq),
		rp.ID,
		rp.TenantID,
		rp.PropertyID,
		rp.TenantName,
		rp.PropertyName,
		rp.UnitNumber,
		items,
		rp.PeriodDueDate,
		invoiceStatusFor(rp, s.now()),
	)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	if err := rp.MarkInvoiced(inv.ID); err != nil {
		return nil, err
	}
	if err := s.rentPaymentRepo.SaveWithLock(ctx, rp); err != nil {
		return nil, err
	}

	pdfURL := s.renderInvoicePDF(ctx, inv)

	s.logger.Info("invoice generated",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.String("rent_payment_id", rp.ID.String()))
	return toInvoiceResponse(inv, pdfURL), nil
}

// buildLineItems assembles the invoice lines: rent, the metered water
// charge when a reading exists, and the flat garbage fee.
func (s *DocumentService) buildLineItems(rp *billing.RentPayment) (document.LineItems, error) {
	items := document.LineItems{
		{Description: "Monthly Rent", Amount: rp.RentAmount},
	}

	waterCharge, err := billing.ComputeUtilityCharge(rp.WaterReading, s.tariff.WaterUnitRateMoney())
	if err != nil {
		return nil, err
	}
	if rp.WaterReading != nil {
		items = append(items, document.LineItem{
			Description: fmt.Sprintf("Water (%s units @ KES %s)",
				rp.WaterReading.Usage().String(), s.tariff.WaterUnitRate.String()),
			Amount: waterCharge.Amount(),
		})
	}

	items = append(items, document.LineItem{
		Description: "Garbage Collection",
		Amount:      s.tariff.GarbageFee,
	})
	return items, nil
}

func invoiceStatusFor(rp *billing.RentPayment, now time.Time) document.InvoiceStatus {
	switch rp.StatusAt(now) {
	case billing.PaymentStatusPaid:
		return document.InvoiceStatusPaid
	case billing.PaymentStatusOverdue:
		return document.InvoiceStatusOverdue
	default:
		return document.InvoiceStatusUnpaid
	}
}

// GenerateReceipt creates the receipt snapshot for a paid billing period.
// The period must already carry an invoice; the receipt amount is the
// invoice total and the pending balance is always zero.
func (s *DocumentService) GenerateReceipt(ctx context.Context, rentPaymentID uuid.UUID) (*ReceiptResponse, error) {
	rp, err := s.rentPaymentRepo.FindByID(ctx, rentPaymentID)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Billing period not found")
	}
	if !rp.IsPaid() {
		return nil, shared.ErrNotPaid
	}
	if rp.InvoiceID == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "An invoice must be generated before a receipt")
	}
	if rp.ReceiptID != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A receipt has already been generated for this period")
	}

	inv, err := s.invoiceRepo.FindByID(ctx, *rp.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.ErrMissingBillingData
	}

	seq, err := s.receiptRepo.NextSequence(ctx, rp.PeriodDueDate)
	if err != nil {
		return nil, err
	}

	receipt, err := document.NewReceipt(
		document.ReceiptNumber(rp.PeriodDueDate, seq),
		rp.ID,
		inv.ID,
		rp.TenantID,
		rp.PropertyID,
		rp.TenantName,
		rp.PropertyName,
		rp.UnitNumber,
		inv.GetTotalDueMoney(),
		*rp.PaymentDate,
		rp.PaymentMethod.String(),
	)
	if err != nil {
		return nil, err
	}

	if rp.WaterReading != nil {
		waterCharge, werr := billing.ComputeUtilityCharge(rp.WaterReading, s.tariff.WaterUnitRateMoney())
		if werr != nil {
			return nil, werr
		}
		receipt.WithWaterFigures(
			rp.WaterReading.PreviousReading,
			rp.WaterReading.CurrentReading,
			waterCharge.Amount(),
		)
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}
	if err := rp.MarkReceipted(receipt.ID); err != nil {
		return nil, err
	}
	if err := s.rentPaymentRepo.SaveWithLock(ctx, rp); err != nil {
		return nil, err
	}

	pdfURL := s.renderReceiptPDF(ctx, receipt)

	s.logger.Info("receipt generated",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("number", receipt.Number),
		zap.String("rent_payment_id", rp.ID.String()))
	return toReceiptResponse(receipt, pdfURL), nil
}

// GetInvoice gets an invoice by ID
func (s *DocumentService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	return toInvoiceResponse(inv, s.pdfURL(inv.PdfPath)), nil
}

// GetReceipt gets a receipt by ID
func (s *DocumentService) GetReceipt(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Receipt not found")
	}
	return toReceiptResponse(receipt, s.pdfURL(receipt.PdfPath)), nil
}

// ListInvoices lists invoices with filtering
func (s *DocumentService) ListInvoices(ctx context.Context, filter document.InvoiceFilter) (*shared.Paginated[*InvoiceResponse], error) {
	page, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*InvoiceResponse, 0, len(page.Items))
	for _, inv := range page.Items {
		responses = append(responses, toInvoiceResponse(inv, s.pdfURL(inv.PdfPath)))
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// ListReceipts lists receipts with filtering
func (s *DocumentService) ListReceipts(ctx context.Context, filter document.ReceiptFilter) (*shared.Paginated[*ReceiptResponse], error) {
	page, err := s.receiptRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*ReceiptResponse, 0, len(page.Items))
	for _, receipt := range page.Items {
		responses = append(responses, toReceiptResponse(receipt, s.pdfURL(receipt.PdfPath)))
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// RerenderInvoice renders the invoice PDF again, replacing any stored
// copy. Used when rendering failed at generation time.
func (s *DocumentService) RerenderInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	pdfURL := s.renderInvoicePDF(ctx, inv)
	if pdfURL == "" {
		return nil, shared.NewDomainError(printing.ErrCodeRenderFailed, "Invoice PDF rendering failed")
	}
	return toInvoiceResponse(inv, pdfURL), nil
}

func (s *DocumentService) renderInvoicePDF(ctx context.Context, inv *document.Invoice) string {
	if s.renderer == nil || s.storage == nil || s.templates == nil {
		return ""
	}

	lines := make([]printing.InvoiceLineView, 0, len(inv.Items))
	for _, item := range inv.Items {
		lines = append(lines, printing.InvoiceLineView{Description: item.Description, Amount: item.Amount})
	}
	view := printing.InvoiceView{
		Number:       inv.Number,
		TenantName:   inv.TenantName,
		PropertyName: inv.PropertyName,
		UnitNumber:   inv.UnitNumber,
		Lines:        lines,
		TotalDue:     inv.TotalDue,
		DueDate:      inv.DueDate,
		Status:       inv.Status.String(),
		IssuedAt:     inv.IssuedAt,
	}

	url, err := s.renderAndStore(ctx, printing.TemplateInvoice, view, storageKindInvoices, inv.Number, inv)
	if err != nil {
		s.logger.Warn("invoice PDF rendering failed",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err))
		return ""
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		s.logger.Warn("failed to persist invoice PDF path",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err))
	}
	return url
}

func (s *DocumentService) renderReceiptPDF(ctx context.Context, receipt *document.Receipt) string {
	if s.renderer == nil || s.storage == nil || s.templates == nil {
		return ""
	}

	view := printing.ReceiptView{
		Number:          receipt.Number,
		TenantName:      receipt.TenantName,
		PropertyName:    receipt.PropertyName,
		UnitNumber:      receipt.UnitNumber,
		AmountPaid:      receipt.AmountPaid,
		PaymentDate:     receipt.PaymentDate,
		PaymentMethod:   receipt.PaymentMethod,
		HasWaterFigures: receipt.HasWaterReading,
		PreviousReading: receipt.PreviousReading,
		CurrentReading:  receipt.CurrentReading,
		WaterCharge:     receipt.WaterCharge,
		PendingBalance:  receipt.PendingBalance,
		IssuedAt:        receipt.IssuedAt,
	}

	url, err := s.renderAndStore(ctx, printing.TemplateReceipt, view, storageKindReceipts, receipt.Number, receipt)
	if err != nil {
		s.logger.Warn("receipt PDF rendering failed",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err))
		return ""
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.logger.Warn("failed to persist receipt PDF path",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err))
	}
	return url
}

// pdfAttacher is satisfied by both Invoice and Receipt
type pdfAttacher interface {
	AttachPDF(path string) error
}

func (s *DocumentService) renderAndStore(ctx context.Context, template string, view interface{}, kind, number string, target pdfAttacher) (string, error) {
	html, err := s.templates.Render(ctx, template, view)
	if err != nil {
		return "", err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{HTML: html, Title: number})
	if err != nil {
		return "", err
	}

	stored, err := s.storage.Store(ctx, &printing.StoreRequest{
		Kind:    kind,
		Number:  number,
		PDFData: result.PDFData,
	})
	if err != nil {
		return "", printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to store rendered PDF", err)
	}

	if err := target.AttachPDF(stored.Path); err != nil {
		return "", err
	}
	return stored.URL, nil
}

func (s *DocumentService) pdfURL(path string) string {
	if path == "" || s.storage == nil {
		return ""
	}
	return s.storage.GetURL(path)
}
