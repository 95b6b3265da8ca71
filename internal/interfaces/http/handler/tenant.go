package handler

import (
	"github.com/gin-gonic/gin"
	tenancyapp "github.com/kejaplus/backend/internal/application/tenancy"
)

// TenantHandler handles tenancy-related API endpoints
type TenantHandler struct {
	BaseHandler
	service *tenancyapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service *tenancyapp.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterRoutes registers all tenancy routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.GET("", h.ListTenants)
		tenants.GET("/expiring", h.ListExpiringLeases)
		tenants.POST("", h.CreateTenant)
		tenants.GET("/:id", h.GetTenant)
		tenants.PUT("/:id/contact", h.UpdateContact)
		tenants.POST("/:id/renew", h.RenewLease)
		tenants.DELETE("/:id", h.DeleteTenant)
	}
}

// CreateTenant registers a tenancy against a property unit
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req tenancyapp.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.CreateTenant(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetTenant returns a single tenancy
func (h *TenantHandler) GetTenant(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListTenants returns a paginated list of tenancies
func (h *TenantHandler) ListTenants(c *gin.Context) {
	var filter tenancyapp.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.service.ListTenants(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// ListExpiringLeases returns leases ending within the lookahead window,
// optionally scoped to a property
func (h *TenantHandler) ListExpiringLeases(c *gin.Context) {
	propertyID, err := optionalUUIDQuery(c, "property_id")
	if err != nil {
		h.BadRequest(c, "Invalid property_id parameter")
		return
	}

	items, err := h.service.ListExpiringLeases(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateContact updates a tenancy's contact details
func (h *TenantHandler) UpdateContact(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req tenancyapp.UpdateTenantContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateContact(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RenewLease extends a lease to a new end date
func (h *TenantHandler) RenewLease(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	var req tenancyapp.RenewLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.RenewLease(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteTenant soft-deletes a tenancy
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTenant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
