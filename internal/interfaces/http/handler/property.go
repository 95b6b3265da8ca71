package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/kejaplus/backend/internal/application/property"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	service *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(service *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// RegisterRoutes registers all property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.GET("", h.ListProperties)
		properties.POST("", h.CreateProperty)
		properties.GET("/:id", h.GetProperty)
		properties.PUT("/:id", h.UpdateProperty)
		properties.DELETE("/:id", h.DeleteProperty)
		properties.POST("/:id/occupancy/refresh", h.RefreshOccupancy)
	}
}

// CreateProperty registers a new property
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req propertyapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateProperty(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetProperty returns a single property
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListProperties returns a paginated list of properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	var filter propertyapp.PropertyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.service.ListProperties(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// UpdateProperty updates a property's mutable fields
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req propertyapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateProperty(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteProperty soft-deletes a property
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RefreshOccupancy recomputes the occupancy snapshot from active leases
func (h *PropertyHandler) RefreshOccupancy(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.RefreshOccupancy(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
