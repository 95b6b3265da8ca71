package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/kejaplus/backend/internal/application/report"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.AggregationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.AggregationService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/financial", h.GetFinancialReport)
		reports.DELETE("/financial/cache", h.InvalidateCache)
	}
}

// GetFinancialReport builds (or serves from cache) the trailing
// twelve-month financial report, optionally scoped to a property
func (h *ReportHandler) GetFinancialReport(c *gin.Context) {
	propertyID, err := optionalUUIDQuery(c, "property_id")
	if err != nil {
		h.BadRequest(c, "Invalid property_id parameter")
		return
	}

	report, err := h.service.BuildFinancialReport(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// InvalidateCache drops the cached report so the next read rebuilds it
func (h *ReportHandler) InvalidateCache(c *gin.Context) {
	propertyID, err := optionalUUIDQuery(c, "property_id")
	if err != nil {
		h.BadRequest(c, "Invalid property_id parameter")
		return
	}

	if err := h.service.InvalidateCache(c.Request.Context(), propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
