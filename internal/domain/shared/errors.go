package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Billing and document lifecycle error codes
const (
	ErrCodeInvalidReading     = "INVALID_READING"
	ErrCodeNotPaid            = "NOT_PAID"
	ErrCodeMissingBillingData = "MISSING_BILLING_DATA"
	ErrCodeDispatchFailed     = "DISPATCH_FAILED"
	ErrCodeAggregationInput   = "AGGREGATION_INPUT"
)

// Billing and document lifecycle errors. Calculation errors are rejected
// synchronously at the call that would otherwise produce an inconsistent
// document; they are never coerced into a default value.
var (
	ErrInvalidReading     = NewDomainError(ErrCodeInvalidReading, "Current meter reading cannot be below the previous reading")
	ErrNotPaid            = NewDomainError(ErrCodeNotPaid, "Receipt requested for a payment that has not been recorded as paid")
	ErrMissingBillingData = NewDomainError(ErrCodeMissingBillingData, "Linked property or tenant reference cannot be resolved")
	ErrDispatchFailed     = NewDomainError(ErrCodeDispatchFailed, "Notification channel failed or timed out")
	ErrAggregationInput   = NewDomainError(ErrCodeAggregationInput, "Malformed date range or empty aggregation input")
)
