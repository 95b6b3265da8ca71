package handler

import (
	"context"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	documentapp "github.com/kejaplus/backend/internal/application/document"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/telemetry"
)

// FileStore reads stored document files by their relative path
type FileStore interface {
	Get(ctx context.Context, path string) (io.ReadCloser, error)
}

// DocumentHandler handles invoice and receipt API endpoints
type DocumentHandler struct {
	BaseHandler
	service *documentapp.DocumentService
	files   FileStore
	metrics *telemetry.BusinessMetrics
}

// DocumentHandlerOption configures a DocumentHandler
type DocumentHandlerOption func(*DocumentHandler)

// WithDocumentMetrics attaches business metric counters
func WithDocumentMetrics(metrics *telemetry.BusinessMetrics) DocumentHandlerOption {
	return func(h *DocumentHandler) {
		h.metrics = metrics
	}
}

// WithFileStore attaches a file store for serving rendered PDFs
func WithFileStore(files FileStore) DocumentHandlerOption {
	return func(h *DocumentHandler) {
		h.files = files
	}
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service *documentapp.DocumentService, opts ...DocumentHandlerOption) *DocumentHandler {
	h := &DocumentHandler{service: service}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GenerateDocumentRequest identifies the billing period to document
type GenerateDocumentRequest struct {
	RentPaymentID uuid.UUID `json:"rent_payment_id" binding:"required"`
}

// RegisterRoutes registers all document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.GenerateInvoice)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("/:id/rerender", h.RerenderInvoice)
		invoices.POST("/:id/send", h.SendInvoice)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.ListReceipts)
		receipts.POST("", h.GenerateReceipt)
		receipts.GET("/:id", h.GetReceipt)
		receipts.POST("/:id/send", h.SendReceipt)
	}

	rg.POST("/documents/send", h.SendDocuments)

	if h.files != nil {
		rg.GET("/documents/files/*path", h.ServeFile)
	}
}

// GenerateInvoice generates (or returns the existing) invoice for a period
func (h *DocumentHandler) GenerateInvoice(c *gin.Context) {
	var req GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.GenerateInvoice(c.Request.Context(), req.RentPaymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentGenerated(c.Request.Context(), document.DocumentTypeInvoice.String())
	}

	h.Created(c, resp)
}

// GetInvoice returns a single invoice
func (h *DocumentHandler) GetInvoice(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListInvoices returns a paginated list of invoices
func (h *DocumentHandler) ListInvoices(c *gin.Context) {
	filter, err := h.invoiceFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RerenderInvoice re-renders the PDF for an existing invoice
func (h *DocumentHandler) RerenderInvoice(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.RerenderInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GenerateReceipt generates (or returns the existing) receipt for a period
func (h *DocumentHandler) GenerateReceipt(c *gin.Context) {
	var req GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.GenerateReceipt(c.Request.Context(), req.RentPaymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentGenerated(c.Request.Context(), document.DocumentTypeReceipt.String())
	}

	h.Created(c, resp)
}

// GetReceipt returns a single receipt
func (h *DocumentHandler) GetReceipt(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SendDocumentRequest selects the channel for sending one document.
// An empty recipient falls back to the tenant's contact on file.
type SendDocumentRequest struct {
	Channel   string `json:"channel" binding:"required"`
	Recipient string `json:"recipient"`
}

// SendInvoice dispatches an invoice over a notification channel
func (h *DocumentHandler) SendInvoice(c *gin.Context) {
	h.sendDocument(c, document.DocumentTypeInvoice)
}

// SendReceipt dispatches a receipt over a notification channel
func (h *DocumentHandler) SendReceipt(c *gin.Context) {
	h.sendDocument(c, document.DocumentTypeReceipt)
}

func (h *DocumentHandler) sendDocument(c *gin.Context, docType document.DocumentType) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req SendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.DispatchDocument(c.Request.Context(), documentapp.DispatchDocumentRequest{
		DocumentType: docType.String(),
		DocumentID:   id,
		Channel:      strings.ToUpper(req.Channel),
		Recipient:    req.Recipient,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentDispatched(c.Request.Context(), resp.DocumentType, resp.Channel, resp.Delivered)
	}

	h.Success(c, resp)
}

// SendDocuments dispatches a batch of documents of one type
func (h *DocumentHandler) SendDocuments(c *gin.Context) {
	var req documentapp.BulkDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.DocumentType = strings.ToUpper(req.DocumentType)
	req.Channel = strings.ToUpper(req.Channel)

	resp, err := h.service.DispatchDocuments(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		for _, r := range resp.Results {
			h.metrics.RecordDocumentDispatched(c.Request.Context(), r.DocumentType, r.Channel, r.Delivered)
		}
	}

	h.Success(c, resp)
}

// ServeFile streams a rendered PDF from the document store
func (h *DocumentHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		h.BadRequest(c, "Missing file path")
		return
	}

	reader, err := h.files.Get(c.Request.Context(), path)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+lastPathSegment(path)+`"`)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already written, nothing sensible left to send.
		_ = c.Error(err)
	}
}

func lastPathSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// invoiceFilter builds the domain filter from query parameters
func (h *DocumentHandler) invoiceFilter(c *gin.Context) (document.InvoiceFilter, error) {
	filter := document.InvoiceFilter{Filter: baseFilter(c)}

	var err error
	if filter.RentPaymentID, err = optionalUUIDQuery(c, "rent_payment_id"); err != nil {
		return filter, err
	}
	if filter.PropertyID, err = optionalUUIDQuery(c, "property_id"); err != nil {
		return filter, err
	}
	if filter.TenantID, err = optionalUUIDQuery(c, "tenant_id"); err != nil {
		return filter, err
	}
	if filter.IssuedFrom, err = optionalDateQuery(c, "issued_from"); err != nil {
		return filter, err
	}
	if filter.IssuedTo, err = optionalDateQuery(c, "issued_to"); err != nil {
		return filter, err
	}
	if raw := c.Query("status"); raw != "" {
		status := document.InvoiceStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			return filter, shared.NewDomainError("INVALID_STATUS", "Unknown invoice status: "+raw)
		}
		filter.Status = &status
	}
	return filter, nil
}

// receiptFilter builds the domain filter from query parameters
func (h *DocumentHandler) receiptFilter(c *gin.Context) (document.ReceiptFilter, error) {
	filter := document.ReceiptFilter{Filter: baseFilter(c)}

	var err error
	if filter.RentPaymentID, err = optionalUUIDQuery(c, "rent_payment_id"); err != nil {
		return filter, err
	}
	if filter.PropertyID, err = optionalUUIDQuery(c, "property_id"); err != nil {
		return filter, err
	}
	if filter.TenantID, err = optionalUUIDQuery(c, "tenant_id"); err != nil {
		return filter, err
	}
	if filter.IssuedFrom, err = optionalDateQuery(c, "issued_from"); err != nil {
		return filter, err
	}
	if filter.IssuedTo, err = optionalDateQuery(c, "issued_to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListReceipts returns a paginated list of receipts
func (h *DocumentHandler) ListReceipts(c *gin.Context) {
	filter, err := h.receiptFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
