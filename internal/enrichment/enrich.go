// =============================================================================
// Sales Analytics - Enrichment Module
// =============================================================================
//
// Joins validated transactions with product metadata from the API. Product
// identifiers in the sales feed look like "P101"; the numeric part is the
// API product ID.
//
// =============================================================================

package enrichment

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// BuildProductMap indexes a product list by its numeric ID.
func BuildProductMap(products []Product) map[int]Product {
	mapping := make(map[int]Product, len(products))
	for _, p := range products {
		mapping[p.ID] = p
	}
	return mapping
}

// Enrich joins each transaction with its product metadata. Transactions
// whose ProductID does not resolve to a catalog entry are kept with zero
// API fields and Matched=false. The input slice is never modified.
func Enrich(transactions []types.Transaction, products map[int]Product) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))

	for _, tx := range transactions {
		e := types.EnrichedTransaction{Transaction: tx}

		if id, ok := numericProductID(tx.ProductID); ok {
			if p, found := products[id]; found {
				e.APICategory = p.Category
				e.APIBrand = p.Brand
				e.APIRating = p.Rating
				e.Matched = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// MatchCount returns how many enriched transactions found a catalog entry.
func MatchCount(enriched []types.EnrichedTransaction) int {
	count := 0
	for _, e := range enriched {
		if e.Matched {
			count++
		}
	}
	return count
}

// numericProductID extracts the numeric API ID from a feed product
// identifier: "P101" and "101" both resolve to 101.
func numericProductID(productID string) (int, bool) {
	s := strings.TrimSpace(productID)
	if len(s) > 0 && (s[0] == 'P' || s[0] == 'p') {
		s = s[1:]
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}
