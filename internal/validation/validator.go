// =============================================================================
// Sales Analytics - Validation / Filter Engine
// =============================================================================
//
// This module applies the business rules and the caller-supplied filters to
// parsed transactions:
//   1. Business validation: Quantity > 0 and UnitPrice > 0
//   2. Region filter: keep records whose Region equals the requested one
//   3. Amount filter: keep records whose Quantity*UnitPrice lies within the
//      requested bounds (bounds themselves are inclusive)
//
// ERROR HANDLING:
//   Nothing here raises. Every dropped record is attributed to exactly one
//   counter - the first check it failed, in the order above - so the summary
//   always satisfies:
//
//     TotalInput == Invalid + FilteredByRegion + FilteredByAmount + FinalCount
//
// =============================================================================

package validation

import (
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// FILTER OPTIONS
// =============================================================================

// FilterOptions are the optional, caller-supplied filters. Zero values mean
// "no filter".
type FilterOptions struct {
	// Region keeps only transactions from this region when non-empty.
	// Comparison is case-insensitive: the feed's region labels are as messy
	// as the rest of it.
	Region string

	// MinAmount drops transactions whose amount is strictly below it.
	MinAmount *float64

	// MaxAmount drops transactions whose amount is strictly above it.
	MaxAmount *float64
}

// =============================================================================
// VALIDATION AND FILTERING
// =============================================================================

// ValidateAndFilter drops invalid records, applies the optional filters and
// returns the surviving transactions together with the run summary.
//
// Input order is preserved and input records are never mutated; the returned
// slice is freshly allocated. Every surviving record satisfies Quantity > 0
// and UnitPrice > 0.
func ValidateAndFilter(transactions []types.Transaction, opts FilterOptions) ([]types.Transaction, types.PipelineSummary) {
	summary := types.PipelineSummary{
		TotalInput: len(transactions),
	}

	final := make([]types.Transaction, 0, len(transactions))

	for _, tx := range transactions {
		if tx.Quantity <= 0 || tx.UnitPrice <= 0 {
			summary.Invalid++
			continue
		}

		if opts.Region != "" && !strings.EqualFold(tx.Region, opts.Region) {
			summary.FilteredByRegion++
			continue
		}

		amount := tx.Amount()
		if opts.MinAmount != nil && amount < *opts.MinAmount {
			summary.FilteredByAmount++
			continue
		}
		if opts.MaxAmount != nil && amount > *opts.MaxAmount {
			summary.FilteredByAmount++
			continue
		}

		final = append(final, tx)
	}

	summary.FinalCount = len(final)
	return final, summary
}

// Regions returns the distinct region labels present in transactions,
// preserving first-seen order. Used to show the operator what the region
// filter can match.
func Regions(transactions []types.Transaction) []string {
	seen := make(map[string]bool)
	regions := make([]string, 0)

	for _, tx := range transactions {
		key := strings.ToLower(tx.Region)
		if seen[key] {
			continue
		}
		seen[key] = true
		regions = append(regions, tx.Region)
	}

	return regions
}

// AmountRange returns the smallest and largest transaction amounts in
// transactions. The boolean is false for an empty input.
func AmountRange(transactions []types.Transaction) (min, max float64, ok bool) {
	if len(transactions) == 0 {
		return 0, 0, false
	}

	min = transactions[0].Amount()
	max = min
	for _, tx := range transactions[1:] {
		amount := tx.Amount()
		if amount < min {
			min = amount
		}
		if amount > max {
			max = amount
		}
	}

	return min, max, true
}
