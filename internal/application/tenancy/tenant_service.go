package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/kejaplus/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TenantService provides application-level tenancy operations
type TenantService struct {
	tenantRepo   tenancy.TenantRepository
	propertyRepo property.PropertyRepository
	logger       *zap.Logger
	now          func() time.Time
}

// TenantServiceOption configures a TenantService
type TenantServiceOption func(*TenantService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) TenantServiceOption {
	return func(s *TenantService) {
		s.logger = logger
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) TenantServiceOption {
	return func(s *TenantService) {
		s.now = now
	}
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo tenancy.TenantRepository,
	propertyRepo property.PropertyRepository,
	opts ...TenantServiceOption,
) *TenantService {
	s := &TenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTenantRequest represents a request to register a tenancy
type CreateTenantRequest struct {
	PropertyID      uuid.UUID       `json:"property_id" binding:"required"`
	UnitNumber      string          `json:"unit_number" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone"`
	NationalID      string          `json:"national_id"`
	LeaseStartDate  time.Time       `json:"lease_start_date" binding:"required"`
	LeaseEndDate    time.Time       `json:"lease_end_date" binding:"required"`
	RentAmount      decimal.Decimal `json:"rent_amount" binding:"required"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	Occupants       int             `json:"occupants"`
	Pets            bool            `json:"pets"`
}

// UpdateTenantContactRequest updates a tenant's contact details
type UpdateTenantContactRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// RenewLeaseRequest extends a lease
type RenewLeaseRequest struct {
	NewEndDate time.Time       `json:"new_end_date" binding:"required"`
	RentAmount decimal.Decimal `json:"rent_amount" binding:"required"`
}

// TenantListFilter defines filtering options for tenant list queries
type TenantListFilter struct {
	Search      string     `form:"search"`
	PropertyID  *uuid.UUID `form:"property_id"`
	UnitNumber  string     `form:"unit_number"`
	LeaseStatus string     `form:"lease_status"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

// TenantResponse represents a tenancy in API responses. LeaseStatus is
// derived at response time, never read from storage.
type TenantResponse struct {
	ID              uuid.UUID       `json:"id"`
	PropertyID      uuid.UUID       `json:"property_id"`
	UnitNumber      string          `json:"unit_number"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	NationalID      string          `json:"national_id,omitempty"`
	LeaseStartDate  time.Time       `json:"lease_start_date"`
	LeaseEndDate    time.Time       `json:"lease_end_date"`
	LeaseStatus     string          `json:"lease_status"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	Occupants       int             `json:"occupants"`
	Pets            bool            `json:"pets"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CreateTenant registers a new tenancy against a property unit
func (s *TenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrMissingBillingData
	}

	occupants := req.Occupants
	if occupants == 0 {
		occupants = 1
	}

	tenant, err := tenancy.NewTenant(
		req.PropertyID,
		req.UnitNumber,
		req.Name,
		req.Email,
		req.Phone,
		req.NationalID,
		req.LeaseStartDate,
		req.LeaseEndDate,
		valueobject.NewMoneyKES(req.RentAmount),
		valueobject.NewMoneyKES(req.SecurityDeposit),
		occupants,
		req.Pets,
	)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("property_id", tenant.PropertyID.String()),
		zap.String("unit", tenant.UnitNumber))
	return s.toTenantResponse(tenant), nil
}

// GetTenant gets a tenancy by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}
	return s.toTenantResponse(tenant), nil
}

// ListTenants lists tenancies with filtering. The lease-status filter is
// applied after the repository query because the status is derived.
func (s *TenantService) ListTenants(ctx context.Context, filter TenantListFilter) ([]TenantResponse, int64, error) {
	domainFilter := tenancy.TenantFilter{
		Filter:     shared.DefaultFilter(),
		PropertyID: filter.PropertyID,
		UnitNumber: filter.UnitNumber,
	}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		resp := s.toTenantResponse(&tenants[i])
		if filter.LeaseStatus != "" && resp.LeaseStatus != filter.LeaseStatus {
			continue
		}
		responses = append(responses, *resp)
	}

	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListExpiringLeases lists tenancies whose lease ends within the expiry
// horizon from now.
func (s *TenantService) ListExpiringLeases(ctx context.Context, propertyID *uuid.UUID) ([]TenantResponse, error) {
	now := s.now()
	horizon := now.Add(tenancy.ExpiryHorizon)
	filter := tenancy.TenantFilter{
		Filter:       shared.DefaultFilter(),
		PropertyID:   propertyID,
		LeaseEndFrom: &now,
		LeaseEndTo:   &horizon,
	}
	filter.PageSize = 200

	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, *s.toTenantResponse(&tenants[i]))
	}
	return responses, nil
}

// UpdateContact updates a tenant's contact details
func (s *TenantService) UpdateContact(ctx context.Context, id uuid.UUID, req UpdateTenantContactRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	if err := tenant.UpdateContact(req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return s.toTenantResponse(tenant), nil
}

// RenewLease extends a tenancy's lease
func (s *TenantService) RenewLease(ctx context.Context, id uuid.UUID, req RenewLeaseRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	if err := tenant.RenewLease(req.NewEndDate, valueobject.NewMoneyKES(req.RentAmount)); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("lease renewed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.Time("new_end", tenant.LeaseEndDate))
	return s.toTenantResponse(tenant), nil
}

// DeleteTenant soft deletes a tenancy record
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}
	return s.tenantRepo.Delete(ctx, id)
}

func (s *TenantService) toTenantResponse(t *tenancy.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:              t.ID,
		PropertyID:      t.PropertyID,
		UnitNumber:      t.UnitNumber,
		Name:            t.Name,
		Email:           t.Email,
		Phone:           t.Phone,
		NationalID:      t.NationalID,
		LeaseStartDate:  t.LeaseStartDate,
		LeaseEndDate:    t.LeaseEndDate,
		LeaseStatus:     t.LeaseStatusAt(s.now()).String(),
		RentAmount:      t.RentAmount,
		SecurityDeposit: t.SecurityDeposit,
		Occupants:       t.Occupants,
		Pets:            t.Pets,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		Version:         t.Version,
	}
}
