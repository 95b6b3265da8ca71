package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	documentapp "github.com/kejaplus/backend/internal/application/document"
	"github.com/kejaplus/backend/internal/domain/document"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/infrastructure/telemetry"
)

// ReminderHandler handles rent reminder API endpoints
type ReminderHandler struct {
	BaseHandler
	service *documentapp.ReminderService
	metrics *telemetry.BusinessMetrics
}

// ReminderHandlerOption configures a ReminderHandler
type ReminderHandlerOption func(*ReminderHandler)

// WithReminderMetrics attaches business metric counters
func WithReminderMetrics(metrics *telemetry.BusinessMetrics) ReminderHandlerOption {
	return func(h *ReminderHandler) {
		h.metrics = metrics
	}
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(service *documentapp.ReminderService, opts ...ReminderHandlerOption) *ReminderHandler {
	h := &ReminderHandler{service: service}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all reminder routes
func (h *ReminderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reminders := rg.Group("/reminders")
	{
		reminders.GET("", h.ListReminders)
		reminders.POST("", h.SendReminder)
		reminders.POST("/bulk", h.SendBulk)
		reminders.GET("/:id", h.GetReminder)
	}
}

// SendReminder dispatches a reminder for a single billing period
func (h *ReminderHandler) SendReminder(c *gin.Context) {
	var req documentapp.SendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.SendReminder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordReminderSent(c.Request.Context(), resp.Channel, resp.Outcome)
	}

	h.Created(c, resp)
}

// SendBulk dispatches reminders for every outstanding period
func (h *ReminderHandler) SendBulk(c *gin.Context) {
	var req documentapp.BulkReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SendBulk(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetReminder returns a single reminder with its channel results
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetReminder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListReminders returns a paginated list of reminders
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	filter, err := h.reminderFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListReminders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// reminderFilter builds the domain filter from query parameters
func (h *ReminderHandler) reminderFilter(c *gin.Context) (document.ReminderFilter, error) {
	filter := document.ReminderFilter{Filter: baseFilter(c)}

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
	if filter.CreatedFrom, err = optionalDateQuery(c, "created_from"); err != nil {
		return filter, err
	}
	if filter.CreatedTo, err = optionalDateQuery(c, "created_to"); err != nil {
		return filter, err
	}
	if raw := c.Query("outcome"); raw != "" {
		outcome := document.ReminderOutcome(strings.ToUpper(raw))
		if !outcome.IsValid() {
			return filter, shared.NewDomainError("INVALID_STATUS", "Unknown reminder outcome: "+raw)
		}
		filter.Outcome = &outcome
	}
	return filter, nil
}
