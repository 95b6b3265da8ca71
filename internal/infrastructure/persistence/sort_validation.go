package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"location":         true,
	"type":             true,
	"units":            true,
	"rent_amount":      true,
	"acquisition_date": true,
	"occupancy_rate":   true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"unit_number":      true,
	"lease_start_date": true,
	"lease_end_date":   true,
	"rent_amount":      true,
}

// RentPaymentSortFields contains allowed sort fields for rent payments
var RentPaymentSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"period_due_date": true,
	"payment_date":    true,
	"rent_amount":     true,
	"tenant_name":     true,
	"property_name":   true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"total_due":  true,
	"due_date":   true,
	"status":     true,
	"issued_at":  true,
}

// ReceiptSortFields contains allowed sort fields for receipts
var ReceiptSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"number":       true,
	"amount_paid":  true,
	"payment_date": true,
	"issued_at":    true,
}

// ReminderSortFields contains allowed sort fields for reminders
var ReminderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"channel":    true,
	"outcome":    true,
	"sent_at":    true,
}

// ExpenseSortFields contains allowed sort fields for expense records
var ExpenseSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"category":    true,
	"amount":      true,
	"incurred_at": true,
}

// MaintenanceSortFields contains allowed sort fields for maintenance requests
var MaintenanceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"status":      true,
	"reported_at": true,
	"closed_at":   true,
}
