package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/shared"
)

// RequestFilter is the query filter for maintenance requests
type RequestFilter struct {
	shared.Filter
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Status     *RequestStatus
}

// RequestRepository is the persistence port for maintenance requests
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindAll(ctx context.Context, filter RequestFilter) (*shared.Paginated[*Request], error)
	Save(ctx context.Context, request *Request) error
	Delete(ctx context.Context, id uuid.UUID) error
}
