package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kejaplus/backend/internal/infrastructure/scheduler"
	"github.com/kejaplus/backend/internal/interfaces/http/dto"
)

// DBPinger checks database connectivity
type DBPinger interface {
	Ping(ctx context.Context) error
}

// JobTrigger submits a scheduled job outside its normal schedule
type JobTrigger interface {
	TriggerNow(jobType scheduler.JobType) error
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	db        DBPinger
	jobs      JobTrigger
}

// SystemHandlerOption configures a SystemHandler
type SystemHandlerOption func(*SystemHandler)

// WithDBPinger attaches a database connectivity check
func WithDBPinger(db DBPinger) SystemHandlerOption {
	return func(h *SystemHandler) {
		h.db = db
	}
}

// WithJobTrigger exposes manual scheduled job triggering
func WithJobTrigger(jobs JobTrigger) SystemHandlerOption {
	return func(h *SystemHandler) {
		h.jobs = jobs
	}
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(opts ...SystemHandlerOption) *SystemHandler {
	h := &SystemHandler{startTime: time.Now()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers all system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/ping", h.Ping)
		system.GET("/health", h.Health)
		if h.jobs != nil {
			system.POST("/jobs/:type/trigger", h.TriggerJob)
		}
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Keja Plus Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a liveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// HealthResponse represents the readiness check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Health is a readiness check that verifies database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeInternal, "Database unreachable"))
			return
		}
		resp.Database = "ok"
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// TriggerJob submits a scheduled job for immediate execution
func (h *SystemHandler) TriggerJob(c *gin.Context) {
	jobType := scheduler.JobType(c.Param("type"))
	if !jobType.IsValid() {
		h.BadRequest(c, "Unknown job type: "+c.Param("type"))
		return
	}

	if err := h.jobs.TriggerNow(jobType); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"job_type": string(jobType)}))
}
