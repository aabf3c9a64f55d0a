// =============================================================================
// Sales Analytics - Analysis Module
// =============================================================================
//
// Aggregations over the validated transaction set: revenue, regional
// breakdown, product rankings, customer behaviour and daily trends.
//
// Everything here consumes the validator's output, so Quantity and UnitPrice
// are known to be positive and are not re-checked.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// RegionSales is the sales breakdown for one region.
type RegionSales struct {
	Region           string
	TotalSales       float64
	TransactionCount int

	// Percentage is this region's share of total revenue, rounded to two
	// decimal places.
	Percentage float64
}

// ProductSales is the aggregate performance of one product.
type ProductSales struct {
	ProductName   string
	TotalQuantity int
	TotalRevenue  float64
}

// CustomerStats is the purchase profile of one customer.
type CustomerStats struct {
	CustomerID    string
	TotalSpent    float64
	PurchaseCount int
	AvgOrderValue float64

	// ProductsBought lists the distinct product names this customer bought,
	// in first-purchase order.
	ProductsBought []string
}

// DailySales is the activity on one calendar day.
type DailySales struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// =============================================================================
// REVENUE
// =============================================================================

// TotalRevenue sums Quantity*UnitPrice over all transactions.
func TotalRevenue(transactions []types.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		total += tx.Amount()
	}
	return total
}

// =============================================================================
// REGIONAL BREAKDOWN
// =============================================================================

// RegionWiseSales aggregates revenue and transaction counts per region,
// sorted by revenue descending.
func RegionWiseSales(transactions []types.Transaction) []RegionSales {
	if len(transactions) == 0 {
		return nil
	}

	grandTotal := TotalRevenue(transactions)

	byRegion := make(map[string]*RegionSales)
	order := make([]string, 0)

	for _, tx := range transactions {
		stats, ok := byRegion[tx.Region]
		if !ok {
			stats = &RegionSales{Region: tx.Region}
			byRegion[tx.Region] = stats
			order = append(order, tx.Region)
		}
		stats.TotalSales += tx.Amount()
		stats.TransactionCount++
	}

	result := make([]RegionSales, 0, len(order))
	for _, region := range order {
		stats := byRegion[region]
		if grandTotal > 0 {
			stats.Percentage = round2(stats.TotalSales / grandTotal * 100)
		}
		result = append(result, *stats)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSales > result[j].TotalSales
	})

	return result
}

// =============================================================================
// PRODUCT RANKINGS
// =============================================================================

// TopSellingProducts returns the n products with the highest total quantity
// sold, highest first.
func TopSellingProducts(transactions []types.Transaction, n int) []ProductSales {
	products := aggregateProducts(transactions)

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].TotalQuantity > products[j].TotalQuantity
	})

	if n < len(products) {
		products = products[:n]
	}
	return products
}

// LowPerformingProducts returns products whose total quantity sold is below
// threshold, lowest first.
func LowPerformingProducts(transactions []types.Transaction, threshold int) []ProductSales {
	products := aggregateProducts(transactions)

	low := make([]ProductSales, 0)
	for _, p := range products {
		if p.TotalQuantity < threshold {
			low = append(low, p)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	return low
}

// aggregateProducts sums quantity and revenue per product name,
// in first-seen order.
func aggregateProducts(transactions []types.Transaction) []ProductSales {
	byName := make(map[string]*ProductSales)
	order := make([]string, 0)

	for _, tx := range transactions {
		stats, ok := byName[tx.ProductName]
		if !ok {
			stats = &ProductSales{ProductName: tx.ProductName}
			byName[tx.ProductName] = stats
			order = append(order, tx.ProductName)
		}
		stats.TotalQuantity += tx.Quantity
		stats.TotalRevenue += tx.Amount()
	}

	result := make([]ProductSales, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result
}

// =============================================================================
// CUSTOMER ANALYSIS
// =============================================================================

// CustomerAnalysis aggregates purchase behaviour per customer, sorted by
// total spend descending.
func CustomerAnalysis(transactions []types.Transaction) []CustomerStats {
	byCustomer := make(map[string]*CustomerStats)
	productsSeen := make(map[string]map[string]bool)
	order := make([]string, 0)

	for _, tx := range transactions {
		stats, ok := byCustomer[tx.CustomerID]
		if !ok {
			stats = &CustomerStats{CustomerID: tx.CustomerID}
			byCustomer[tx.CustomerID] = stats
			productsSeen[tx.CustomerID] = make(map[string]bool)
			order = append(order, tx.CustomerID)
		}
		stats.TotalSpent += tx.Amount()
		stats.PurchaseCount++
		if !productsSeen[tx.CustomerID][tx.ProductName] {
			productsSeen[tx.CustomerID][tx.ProductName] = true
			stats.ProductsBought = append(stats.ProductsBought, tx.ProductName)
		}
	}

	result := make([]CustomerStats, 0, len(order))
	for _, id := range order {
		stats := byCustomer[id]
		if stats.PurchaseCount > 0 {
			stats.AvgOrderValue = round2(stats.TotalSpent / float64(stats.PurchaseCount))
		}
		result = append(result, *stats)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpent > result[j].TotalSpent
	})

	return result
}

// =============================================================================
// DAILY TRENDS
// =============================================================================

// DailySalesTrend aggregates revenue, transaction counts and unique
// customers per day, sorted by date ascending. Dates are YYYY-MM-DD strings,
// so lexicographic order is chronological order.
func DailySalesTrend(transactions []types.Transaction) []DailySales {
	byDate := make(map[string]*DailySales)
	customers := make(map[string]map[string]bool)

	for _, tx := range transactions {
		stats, ok := byDate[tx.Date]
		if !ok {
			stats = &DailySales{Date: tx.Date}
			byDate[tx.Date] = stats
			customers[tx.Date] = make(map[string]bool)
		}
		stats.Revenue += tx.Amount()
		stats.TransactionCount++
		customers[tx.Date][tx.CustomerID] = true
	}

	result := make([]DailySales, 0, len(byDate))
	for date, stats := range byDate {
		stats.UniqueCustomers = len(customers[date])
		result = append(result, *stats)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result
}

// PeakSalesDay returns the day with the highest revenue. The boolean is
// false for an empty input.
func PeakSalesDay(transactions []types.Transaction) (DailySales, bool) {
	trend := DailySalesTrend(transactions)
	if len(trend) == 0 {
		return DailySales{}, false
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}
	return peak, true
}

// round2 rounds to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
