package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kejaplus/backend/internal/domain/finance"
	"github.com/kejaplus/backend/internal/domain/property"
	"github.com/kejaplus/backend/internal/domain/shared"
	"github.com/kejaplus/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService provides application-level expense ledger operations
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	propertyRepo property.PropertyRepository
	events       shared.EventPublisher
	logger       *zap.Logger
}

// ExpenseServiceOption configures an ExpenseService
type ExpenseServiceOption func(*ExpenseService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ExpenseServiceOption {
	return func(s *ExpenseService) {
		s.logger = logger
	}
}

// WithEventPublisher enables domain event publication after saves
func WithEventPublisher(events shared.EventPublisher) ExpenseServiceOption {
	return func(s *ExpenseService) {
		s.events = events
	}
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	propertyRepo property.PropertyRepository,
	opts ...ExpenseServiceOption,
) *ExpenseService {
	s := &ExpenseService{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordExpenseRequest adds an entry to the expense ledger
type RecordExpenseRequest struct {
	PropertyID  *uuid.UUID      `json:"property_id"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
}

// UpdateExpenseRequest corrects a ledger entry
type UpdateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	IncurredAt  time.Time       `json:"incurred_at" binding:"required"`
}

// ExpenseListFilter defines filtering options for ledger queries
type ExpenseListFilter struct {
	PropertyID   *uuid.UUID `form:"property_id"`
	Category     string     `form:"category"`
	IncurredFrom *time.Time `form:"incurred_from"`
	IncurredTo   *time.Time `form:"incurred_to"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
}

// ExpenseResponse represents a ledger entry in API responses
type ExpenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	PropertyID   *uuid.UUID      `json:"property_id,omitempty"`
	Category     string          `json:"category"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	IncurredAt   time.Time       `json:"incurred_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// RecordExpense adds an entry to the expense ledger. A nil property ID
// records a portfolio-level cost.
func (s *ExpenseService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*ExpenseResponse, error) {
	if req.PropertyID != nil {
		p, err := s.propertyRepo.FindByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, shared.ErrMissingBillingData
		}
	}

	expense, err := finance.NewExpenseRecord(
		req.PropertyID,
		finance.ExpenseCategory(req.Category),
		valueobject.NewMoneyKES(req.Amount),
		req.Description,
		req.IncurredAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, expense)

	s.logger.Info("expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", expense.Category.String()))
	return toExpenseResponse(expense), nil
}

// publishEvents drains the aggregate's events onto the bus. Publication
// is best effort; the state change has already been persisted.
func (s *ExpenseService) publishEvents(ctx context.Context, expense *finance.ExpenseRecord) {
	if s.events == nil {
		return
	}
	events := expense.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("expense_id", expense.ID.String()),
			zap.Error(err))
	}
	expense.ClearDomainEvents()
}

// GetExpense gets a ledger entry by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense record not found")
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists ledger entries with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) (*shared.Paginated[*ExpenseResponse], error) {
	domainFilter := finance.ExpenseFilter{
		Filter:       shared.DefaultFilter(),
		PropertyID:   filter.PropertyID,
		IncurredFrom: filter.IncurredFrom,
		IncurredTo:   filter.IncurredTo,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Category != "" {
		category := finance.ExpenseCategory(filter.Category)
		if !category.IsValid() {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
		}
		domainFilter.Category = &category
	}

	page, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	responses := make([]*ExpenseResponse, 0, len(page.Items))
	for _, expense := range page.Items {
		responses = append(responses, toExpenseResponse(expense))
	}
	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// UpdateExpense corrects a ledger entry
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense record not found")
	}

	if err := expense.Update(
		finance.ExpenseCategory(req.Category),
		valueobject.NewMoneyKES(req.Amount),
		req.Description,
		req.IncurredAt,
	); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes a ledger entry
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return shared.NewDomainError("NOT_FOUND", "Expense record not found")
	}
	return s.expenseRepo.Delete(ctx, id)
}

func toExpenseResponse(e *finance.ExpenseRecord) *ExpenseResponse {
	return &ExpenseResponse{
		ID:           e.ID,
		PropertyID:   e.PropertyID,
		Category:     e.Category.String(),
		CategoryName: e.Category.DisplayName(),
		Amount:       e.Amount,
		Description:  e.Description,
		IncurredAt:   e.IncurredAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Version:      e.Version,
	}
}
