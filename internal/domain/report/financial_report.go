package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowPoint is one month of inflow vs outflow
type CashFlowPoint struct {
	Month   string          `json:"month"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// PaymentTrendPoint is one month of on-time vs late payment counts
type PaymentTrendPoint struct {
	Month  string `json:"month"`
	OnTime int    `json:"on_time"`
	Late   int    `json:"late"`
}

// DocumentTrendPoint is one month of generated-document counts per type
type DocumentTrendPoint struct {
	Month     string `json:"month"`
	Invoices  int64  `json:"invoices"`
	Receipts  int64  `json:"receipts"`
	Reminders int64  `json:"reminders"`
}

// DocumentCounts are the window totals per document type
type DocumentCounts struct {
	Invoices  int64 `json:"invoices"`
	Receipts  int64 `json:"receipts"`
	Reminders int64 `json:"reminders"`
}

// ExpenseBreakdownEntry is one category's share of total expenses.
// Percentage is in [0,100]; entries of a breakdown sum to 100 within
// rounding tolerance.
type ExpenseBreakdownEntry struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// OccupancyPoint ties one month's occupancy rate to its revenue.
// Rate is a fraction in [0,1]. RevenuePerUnit divides revenue by the
// rate with an epsilon guard so empty months stay finite.
type OccupancyPoint struct {
	Month          string          `json:"month"`
	Rate           decimal.Decimal `json:"rate"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenuePerUnit decimal.Decimal `json:"revenue_per_unit"`
}

// Profitability carries margin metrics as fractions in [0,1].
// Conversion to percentages happens at the presentation boundary only.
type Profitability struct {
	GrossMargin decimal.Decimal `json:"gross_margin"`
	NetMargin   decimal.Decimal `json:"net_margin"`
	ROI         decimal.Decimal `json:"roi"`
}

// FinancialSummary is the headline figures for the window
type FinancialSummary struct {
	TotalInflow        decimal.Decimal `json:"total_inflow"`
	TotalOutflow       decimal.Decimal `json:"total_outflow"`
	NetCashFlow        decimal.Decimal `json:"net_cash_flow"`
	CollectionRate     decimal.Decimal `json:"collection_rate"`      // Fraction in [0,1]
	AveragePaymentDays decimal.Decimal `json:"average_payment_days"` // Due date to payment, paid records only
}

// FinancialReport is the full aggregation output for one window
type FinancialReport struct {
	PropertyID       *uuid.UUID                         `json:"property_id,omitempty"` // Nil for portfolio-wide
	GeneratedAt      time.Time                          `json:"generated_at"`
	WindowStart      time.Time                          `json:"window_start"`
	WindowEnd        time.Time                          `json:"window_end"`
	CashFlow         [BucketCount]CashFlowPoint         `json:"cash_flow"`
	PaymentTrends    [BucketCount]PaymentTrendPoint     `json:"payment_trends"`
	DocumentTrends   [BucketCount]DocumentTrendPoint    `json:"document_trends"`
	DocumentCounts   DocumentCounts                     `json:"document_counts"`
	ExpenseBreakdown []ExpenseBreakdownEntry            `json:"expense_breakdown"`
	Occupancy        [BucketCount]OccupancyPoint        `json:"occupancy"`
	Profitability    Profitability                      `json:"profitability"`
	Summary          FinancialSummary                   `json:"summary"`
}
