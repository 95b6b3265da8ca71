package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/kejaplus/backend/internal/application/billing"
	"github.com/kejaplus/backend/internal/infrastructure/telemetry"
)

// RentPaymentHandler handles billing period API endpoints
type RentPaymentHandler struct {
	BaseHandler
	service *billingapp.BillingService
	metrics *telemetry.BusinessMetrics
}

// RentPaymentHandlerOption configures a RentPaymentHandler
type RentPaymentHandlerOption func(*RentPaymentHandler)

// WithBusinessMetrics attaches business metric counters
func WithBusinessMetrics(metrics *telemetry.BusinessMetrics) RentPaymentHandlerOption {
	return func(h *RentPaymentHandler) {
		h.metrics = metrics
	}
}

// NewRentPaymentHandler creates a new RentPaymentHandler
func NewRentPaymentHandler(service *billingapp.BillingService, opts ...RentPaymentHandlerOption) *RentPaymentHandler {
	h := &RentPaymentHandler{service: service}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all billing period routes
func (h *RentPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	periods := rg.Group("/rent-payments")
	{
		periods.GET("", h.ListPeriods)
		periods.GET("/outstanding", h.GetOutstanding)
		periods.POST("", h.OpenPeriod)
		periods.GET("/:id", h.GetPeriod)
		periods.POST("/:id/reading", h.RecordReading)
		periods.POST("/:id/payment", h.RecordPayment)
	}
}

// OpenPeriod opens a billing period for a tenancy
func (h *RentPaymentHandler) OpenPeriod(c *gin.Context) {
	var req billingapp.OpenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.OpenPeriod(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetPeriod returns a single billing period with its resolved status
func (h *RentPaymentHandler) GetPeriod(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListPeriods returns a paginated list of billing periods
func (h *RentPaymentHandler) ListPeriods(c *gin.Context) {
	var filter billingapp.RentPaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.service.ListPeriods(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// RecordReading attaches a water meter reading to a period
func (h *RentPaymentHandler) RecordReading(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RecordReading(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordPayment marks a period as paid
func (h *RentPaymentHandler) RecordPayment(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPayment(c.Request.Context(), resp.PaymentMethod, resp.Late)
	}

	h.Success(c, resp)
}

// GetOutstanding summarizes unpaid periods, optionally scoped to a property
func (h *RentPaymentHandler) GetOutstanding(c *gin.Context) {
	propertyID, err := optionalUUIDQuery(c, "property_id")
	if err != nil {
		h.BadRequest(c, "Invalid property_id parameter")
		return
	}

	totals, err := h.service.GetOutstanding(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}
