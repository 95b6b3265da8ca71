package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Epsilon is the floor for occupancy-rate divisions. A month with no
// recorded occupancy divides by this instead of zero so the series
// never carries infinities.
var Epsilon = decimal.RequireFromString("0.0001")

const percentagePlaces = 2

// RevenuePerUnit divides a month's revenue by its occupancy rate,
// guarded against zero occupancy.
func RevenuePerUnit(revenue, occupancyRate decimal.Decimal) decimal.Decimal {
	divisor := occupancyRate
	if divisor.LessThan(Epsilon) {
		divisor = Epsilon
	}
	return revenue.Div(divisor)
}

// ComputeExpenseBreakdown turns per-category totals into percentage
// shares. Percentages are rounded to two places and the largest
// category absorbs the rounding remainder, keeping the sum at exactly
// 100. Non-positive categories are dropped; an empty ledger yields an
// empty breakdown.
func ComputeExpenseBreakdown(totals map[string]decimal.Decimal) []ExpenseBreakdownEntry {
	type categoryTotal struct {
		category string
		amount   decimal.Decimal
	}

	filtered := make([]categoryTotal, 0, len(totals))
	sum := decimal.Zero
	for category, amount := range totals {
		if amount.IsPositive() {
			filtered = append(filtered, categoryTotal{category, amount})
			sum = sum.Add(amount)
		}
	}
	if len(filtered) == 0 {
		return []ExpenseBreakdownEntry{}
	}

	// Largest first, ties broken by name for stable output.
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].amount.Equal(filtered[j].amount) {
			return filtered[i].amount.GreaterThan(filtered[j].amount)
		}
		return filtered[i].category < filtered[j].category
	})

	hundred := decimal.NewFromInt(100)
	entries := make([]ExpenseBreakdownEntry, len(filtered))
	assigned := decimal.Zero
	for i, ct := range filtered {
		pct := ct.amount.Mul(hundred).Div(sum).Round(percentagePlaces)
		entries[i] = ExpenseBreakdownEntry{Category: ct.category, Amount: ct.amount, Percentage: pct}
		assigned = assigned.Add(pct)
	}
	entries[0].Percentage = entries[0].Percentage.Add(hundred.Sub(assigned))
	return entries
}

// ComputeProfitability derives margin fractions from window totals.
// Direct costs are property-attributable expenses; overheads are
// portfolio-level costs. Results are fractions, not percentages;
// negative margins pass through as-is when costs exceed revenue.
// Zero denominators yield zero, not an error.
func ComputeProfitability(revenue, directCosts, overheads, invested decimal.Decimal) Profitability {
	p := Profitability{
		GrossMargin: decimal.Zero,
		NetMargin:   decimal.Zero,
		ROI:         decimal.Zero,
	}
	grossProfit := revenue.Sub(directCosts)
	netProfit := grossProfit.Sub(overheads)
	if revenue.IsPositive() {
		p.GrossMargin = grossProfit.Div(revenue)
		p.NetMargin = netProfit.Div(revenue)
	}
	if invested.IsPositive() {
		p.ROI = netProfit.Div(invested)
	}
	return p
}

// CollectionRate is the fraction of billed periods in the window that
// were paid. Zero periods yields zero.
func CollectionRate(paidCount, totalCount int64) decimal.Decimal {
	if totalCount <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(paidCount).Div(decimal.NewFromInt(totalCount))
}
