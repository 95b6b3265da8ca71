package handler

import (
	"github.com/gin-gonic/gin"
	maintenanceapp "github.com/kejaplus/backend/internal/application/maintenance"
)

// MaintenanceHandler handles maintenance request API endpoints
type MaintenanceHandler struct {
	BaseHandler
	service *maintenanceapp.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(service *maintenanceapp.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// RegisterRoutes registers all maintenance routes
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/maintenance-requests")
	{
		requests.GET("", h.ListRequests)
		requests.POST("", h.ReportRequest)
		requests.GET("/:id", h.GetRequest)
		requests.POST("/:id/start", h.StartRequest)
		requests.POST("/:id/close", h.CloseRequest)
	}
}

// ReportRequest reports a new maintenance issue
func (h *MaintenanceHandler) ReportRequest(c *gin.Context) {
	var req maintenanceapp.ReportRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.ReportRequest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetRequest returns a single maintenance request
func (h *MaintenanceHandler) GetRequest(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListRequests returns a paginated list of maintenance requests
func (h *MaintenanceHandler) ListRequests(c *gin.Context) {
	var filter maintenanceapp.RequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// StartRequest moves a request into progress
func (h *MaintenanceHandler) StartRequest(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.StartRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CloseRequest closes a request with its resolution
func (h *MaintenanceHandler) CloseRequest(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req maintenanceapp.CloseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CloseRequest(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
