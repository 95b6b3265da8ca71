package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
)

// RequestStatus represents the lifecycle state of a maintenance request
type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "OPEN"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusClosed     RequestStatus = "CLOSED"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusInProgress, RequestStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// Request is a reported maintenance issue for a property unit
type Request struct {
	shared.BaseAggregateRoot
	PropertyID  uuid.UUID
	TenantID    *uuid.UUID // Nil when reported by management
	UnitNumber  string
	Description string
	Status      RequestStatus
	ReportedAt  time.Time
	ClosedAt    *time.Time
	Resolution  string
}

// NewRequest creates a maintenance request in the Open status
func NewRequest(propertyID uuid.UUID, tenantID *uuid.UUID, unitNumber, description string) (*Request, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 1000 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}

	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		TenantID:          tenantID,
		UnitNumber:        unitNumber,
		Description:       description,
		Status:            RequestStatusOpen,
		ReportedAt:        time.Now(),
	}, nil
}

// Start moves the request to in progress
func (r *Request) Start() error {
	if r.Status != RequestStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open requests can be started")
	}
	r.Status = RequestStatusInProgress
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Close resolves the request. Closing straight from Open is allowed for
// issues fixed on first visit.
func (r *Request) Close(resolution string) error {
	if r.Status == RequestStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Request is already closed")
	}
	now := time.Now()
	r.Status = RequestStatusClosed
	r.Resolution = resolution
	r.ClosedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}
