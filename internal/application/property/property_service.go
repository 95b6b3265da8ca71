package property

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

// PropertyService provides application-level property operations
type PropertyService struct {
	propertyRepo property.PropertyRepository
	tenantRepo   tenancy.TenantRepository
	logger       *zap.Logger
	now          func() time.Time
}

// PropertyServiceOption configures a PropertyService
type PropertyServiceOption func(*PropertyService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) PropertyServiceOption {
	return func(s *PropertyService) {
		s.logger = logger
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) PropertyServiceOption {
	return func(s *PropertyService) {
		s.now = now
	}
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	tenantRepo tenancy.TenantRepository,
	opts ...PropertyServiceOption,
) *PropertyService {
	s := &PropertyService{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ManagerDTO is a manager contact in requests and responses
type ManagerDTO struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CreatePropertyRequest represents a request to register a property
type CreatePropertyRequest struct {
	Name             string          `json:"name" binding:"required"`
	Location         string          `json:"location" binding:"required"`
	Type             string          `json:"type" binding:"required"`
	Units            int             `json:"units" binding:"required"`
	RentAmount       decimal.Decimal `json:"rent_amount" binding:"required"`
	AcquisitionDate  time.Time       `json:"acquisition_date"`
	Amenities        []string        `json:"amenities"`
	NearbyFacilities []string        `json:"nearby_facilities"`
	Managers         []ManagerDTO    `json:"managers"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name             string          `json:"name" binding:"required"`
	Location         string          `json:"location" binding:"required"`
	Units            int             `json:"units" binding:"required"`
	RentAmount       decimal.Decimal `json:"rent_amount" binding:"required"`
	Amenities        []string        `json:"amenities"`
	NearbyFacilities []string        `json:"nearby_facilities"`
}

// PropertyListFilter defines filtering options for property list queries
type PropertyListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Location string `form:"location"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Location         string          `json:"location"`
	Type             string          `json:"type"`
	Units            int             `json:"units"`
	RentAmount       decimal.Decimal `json:"rent_amount"`
	AcquisitionDate  time.Time       `json:"acquisition_date"`
	Amenities        []string        `json:"amenities"`
	NearbyFacilities []string        `json:"nearby_facilities"`
	Managers         []ManagerDTO    `json:"managers"`
	OccupiedUnits    int             `json:"occupied_units"`
	OccupancyRate    decimal.Decimal `json:"occupancy_rate"`
	SnapshotAt       *time.Time      `json:"snapshot_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// CreateProperty registers a new property
func (s *PropertyService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*PropertyResponse, error) {
	existing, err := s.propertyRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A property with this name already exists")
	}

	acquisition := req.AcquisitionDate
	if acquisition.IsZero() {
		acquisition = s.now()
	}

	p, err := property.NewProperty(
		req.Name,
		req.Location,
		property.PropertyType(req.Type),
		req.Units,
		valueobject.NewMoneyKES(req.RentAmount),
		acquisition,
	)
	if err != nil {
		return nil, err
	}

	if len(req.Amenities) > 0 {
		p.SetAmenities(req.Amenities)
	}
	if len(req.NearbyFacilities) > 0 {
		p.SetNearbyFacilities(req.NearbyFacilities)
	}
	for _, m := range req.Managers {
		if err := p.AddManager(m.Name, m.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("property registered",
		zap.String("property_id", p.ID.String()),
		zap.String("name", p.Name))
	return toPropertyResponse(p), nil
}

// GetProperty gets a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return toPropertyResponse(p), nil
}

// ListProperties lists properties with filtering
func (s *PropertyService) ListProperties(ctx context.Context, filter PropertyListFilter) ([]PropertyResponse, int64, error) {
	domainFilter := property.PropertyFilter{
		Filter:   shared.DefaultFilter(),
		Location: filter.Location,
	}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Type != "" {
		t := property.PropertyType(filter.Type)
		if !t.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_PROPERTY_TYPE", "Property type is not valid")
		}
		domainFilter.Type = &t
	}

	properties, err := s.propertyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, *toPropertyResponse(&properties[i]))
	}
	return responses, total, nil
}

// UpdateProperty updates a property's mutable details
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	if err := p.UpdateDetails(req.Name, req.Location, req.Units, valueobject.NewMoneyKES(req.RentAmount)); err != nil {
		return nil, err
	}
	if req.Amenities != nil {
		p.SetAmenities(req.Amenities)
	}
	if req.NearbyFacilities != nil {
		p.SetNearbyFacilities(req.NearbyFacilities)
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toPropertyResponse(p), nil
}

// DeleteProperty soft deletes a property. Properties with active leases
// cannot be deleted.
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	active, err := s.tenantRepo.CountActiveLeases(ctx, id, s.now())
	if err != nil {
		return err
	}
	if active > 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a property with active leases")
	}
	return s.propertyRepo.Delete(ctx, id)
}

// RefreshOccupancy recomputes the property's occupancy snapshot from the
// leases active right now and caches it on the aggregate.
func (s *PropertyService) RefreshOccupancy(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	now := s.now()
	occupied, err := s.tenantRepo.CountActiveLeases(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if err := p.RefreshOccupancySnapshot(int(occupied), now); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug("occupancy snapshot refreshed",
		zap.String("property_id", p.ID.String()),
		zap.Int("occupied", p.OccupiedUnits))
	return toPropertyResponse(p), nil
}

func toPropertyResponse(p *property.Property) *PropertyResponse {
	managers := make([]ManagerDTO, 0, len(p.Managers))
	for _, m := range p.Managers {
		managers = append(managers, ManagerDTO{Name: m.Name, Phone: m.Phone})
	}
	return &PropertyResponse{
		ID:               p.ID,
		Name:             p.Name,
		Location:         p.Location,
		Type:             p.Type.String(),
		Units:            p.Units,
		RentAmount:       p.RentAmount,
		AcquisitionDate:  p.AcquisitionDate,
		Amenities:        p.Amenities,
		NearbyFacilities: p.NearbyFacilities,
		Managers:         managers,
		OccupiedUnits:    p.OccupiedUnits,
		OccupancyRate:    p.OccupancyRate,
		SnapshotAt:       p.SnapshotAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}
