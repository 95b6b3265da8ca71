package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/maintenance"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// MaintenanceService provides application-level maintenance request
// operations
type MaintenanceService struct {
	requestRepo  maintenance.RequestRepository
	propertyRepo property.PropertyRepository
	tenantRepo   tenancy.TenantRepository
	logger       *zap.Logger
}

// MaintenanceServiceOption configures a MaintenanceService
type MaintenanceServiceOption func(*MaintenanceService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) MaintenanceServiceOption {
	return func(s *MaintenanceService) {
		s.logger = logger
	}
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(
	requestRepo maintenance.RequestRepository,
	propertyRepo property.PropertyRepository,
	tenantRepo tenancy.TenantRepository,
	opts ...MaintenanceServiceOption,
) *MaintenanceService {
	s := &MaintenanceService{
		requestRepo:  requestRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportRequestRequest opens a maintenance request
type ReportRequestRequest struct {
	PropertyID  uuid.UUID  `json:"property_id" binding:"required"`
	TenantID    *uuid.UUID `json:"tenant_id"`
	UnitNumber  string     `json:"unit_number"`
	Description string     `json:"description" binding:"required"`
}

// CloseRequestRequest closes a maintenance request
type CloseRequestRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// RequestListFilter defines filtering options for request queries
type RequestListFilter struct {
	PropertyID *uuid.UUID `form:"property_id"`
	TenantID   *uuid.UUID `form:"tenant_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// RequestResponse represents a maintenance request in API responses
type RequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  uuid.UUID  `json:"property_id"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	UnitNumber  string     `json:"unit_number,omitempty"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ReportedAt  time.Time  `json:"reported_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ReportRequest opens a maintenance request against a property
func (s *MaintenanceService) ReportRequest(ctx context.Context, req ReportRequestRequest) (*RequestResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrMissingBillingData
	}
	if req.TenantID != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, *req.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, shared.ErrMissingBillingData
		}
	}

	request, err := maintenance.NewRequest(req.PropertyID, req.TenantID, req.UnitNumber, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request reported",
		zap.String("request_id", request.ID.String()),
		zap.String("property_id", request.PropertyID.String()))
	return toRequestResponse(request), nil
}

// GetRequest gets a maintenance request by ID
func (s *MaintenanceService) GetRequest(ctx context.Context, id uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Maintenance request not found")
	}
	return toRequestResponse(request), nil
}

// ListRequests lists maintenance requests with filtering
func (s *MaintenanceService) ListRequests(ctx context.Context, filter RequestListFilter) (*shared.Paginated[*RequestResponse], error) {
	domainFilter := maintenance.RequestFilter{
		Filter:     shared.DefaultFilter(),
		PropertyID: filter.PropertyID,
		TenantID:   filter.TenantID,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := maintenance.RequestStatus(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Request status is not valid")
		}
		domainFilter.Status = &status
	}

	page, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	responses := make([]*RequestResponse, 0, len(page.Items))
	for _, request := range page.Items {
		responses = append(responses, toRequestResponse(request))
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// StartRequest moves an open request into progress
func (s *MaintenanceService) StartRequest(ctx context.Context, id uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Maintenance request not found")
	}

	if err := request.Start(); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	return toRequestResponse(request), nil
}

// CloseRequest closes a request with a resolution note
func (s *MaintenanceService) CloseRequest(ctx context.Context, id uuid.UUID, req CloseRequestRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Maintenance request not found")
	}

	if err := request.Close(req.Resolution); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("maintenance request closed",
		zap.String("request_id", request.ID.String()))
	return toRequestResponse(request), nil
}

func toRequestResponse(r *maintenance.Request) *RequestResponse {
	return &RequestResponse{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		TenantID:    r.TenantID,
		UnitNumber:  r.UnitNumber,
		Description: r.Description,
		Status:      r.Status.String(),
		ReportedAt:  r.ReportedAt,
		ClosedAt:    r.ClosedAt,
		Resolution:  r.Resolution,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}
