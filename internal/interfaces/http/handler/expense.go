package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/kejaplus/backend/internal/application/finance"
	"github.com/kejaplus/backend/internal/infrastructure/telemetry"
)

// ExpenseHandler handles expense ledger API endpoints
type ExpenseHandler struct {
	BaseHandler
	service *financeapp.ExpenseService
	metrics *telemetry.BusinessMetrics
}

// ExpenseHandlerOption configures an ExpenseHandler
type ExpenseHandlerOption func(*ExpenseHandler)

// WithExpenseMetrics attaches business metric counters
func WithExpenseMetrics(metrics *telemetry.BusinessMetrics) ExpenseHandlerOption {
	return func(h *ExpenseHandler) {
		h.metrics = metrics
	}
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *financeapp.ExpenseService, opts ...ExpenseHandlerOption) *ExpenseHandler {
	h := &ExpenseHandler{service: service}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all expense ledger routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.RecordExpense)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

// RecordExpense records an operating expense against the ledger
func (h *ExpenseHandler) RecordExpense(c *gin.Context) {
	var req financeapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RecordExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordExpense(c.Request.Context(), resp.Category)
	}

	h.Created(c, resp)
}

// GetExpense returns a single ledger entry
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListExpenses returns a paginated list of ledger entries
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateExpense corrects a ledger entry
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteExpense soft-deletes a ledger entry
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
