// =============================================================================
// Sales Analytics - Report / Output Module
// =============================================================================
//
// Everything the pipeline persists comes through here:
//   - the enriched dataset, saved as a pipe-delimited text file
//   - the human-readable sales report (plain text)
//   - the sales report workbook (XLSX)
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-analytics/internal/analytics"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// enrichedHeader is the fixed column order of the enriched data file.
var enrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// =============================================================================
// ENRICHED DATA FILE
// =============================================================================

// SaveEnriched writes the enriched transactions to path as pipe-delimited
// text with a header row. Parent directories are created as needed.
func SaveEnriched(enriched []types.EnrichedTransaction, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(enrichedHeader, "|"))
	b.WriteByte('\n')

	for _, e := range enriched {
		row := []string{
			e.TransactionID,
			e.Date,
			e.ProductID,
			e.ProductName,
			strconv.Itoa(e.Quantity),
			formatFloat(e.UnitPrice),
			e.CustomerID,
			e.Region,
			e.APICategory,
			e.APIBrand,
			formatRating(e),
			strconv.FormatBool(e.Matched),
		}
		b.WriteString(strings.Join(row, "|"))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing enriched data: %w", err)
	}
	return nil
}

// =============================================================================
// TEXT REPORT
// =============================================================================

// Options control what the generated report contains.
type Options struct {
	// TopProducts is how many products the top-sellers section lists.
	TopProducts int

	// LowSalesThreshold flags products selling fewer units than this.
	LowSalesThreshold int
}

// WriteSalesReport renders the sales report for the validated transactions
// and writes it to path.
func WriteSalesReport(transactions []types.Transaction, summary types.PipelineSummary, opts Options, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	text := renderReport(transactions, summary, opts)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing sales report: %w", err)
	}
	return nil
}

// renderReport builds the report text.
func renderReport(transactions []types.Transaction, summary types.PipelineSummary, opts Options) string {
	var b strings.Builder

	line := strings.Repeat("=", 40)
	b.WriteString(line + "\n")
	b.WriteString("SALES REPORT\n")
	b.WriteString(line + "\n\n")

	// Pipeline summary.
	b.WriteString("Pipeline Summary\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Lines read:          %d\n", summary.LinesRead)
	fmt.Fprintf(&b, "Malformed lines:     %d\n", summary.Malformed)
	fmt.Fprintf(&b, "Invalid records:     %d\n", summary.Invalid)
	fmt.Fprintf(&b, "Filtered by region:  %d\n", summary.FilteredByRegion)
	fmt.Fprintf(&b, "Filtered by amount:  %d\n", summary.FilteredByAmount)
	fmt.Fprintf(&b, "Final records:       %d\n\n", summary.FinalCount)

	// Revenue.
	fmt.Fprintf(&b, "Total Revenue: %.2f\n\n", analytics.TotalRevenue(transactions))

	// Regional breakdown.
	b.WriteString("Sales by Region\n")
	b.WriteString("---------------\n")
	for _, r := range analytics.RegionWiseSales(transactions) {
		fmt.Fprintf(&b, "%-15s %12.2f  (%d transactions, %.2f%%)\n",
			r.Region, r.TotalSales, r.TransactionCount, r.Percentage)
	}
	b.WriteByte('\n')

	// Top products.
	fmt.Fprintf(&b, "Top %d Products by Quantity\n", opts.TopProducts)
	b.WriteString("--------------------------\n")
	for i, p := range analytics.TopSellingProducts(transactions, opts.TopProducts) {
		fmt.Fprintf(&b, "%d. %-20s qty %-5d revenue %.2f\n",
			i+1, p.ProductName, p.TotalQuantity, p.TotalRevenue)
	}
	b.WriteByte('\n')

	// Low performers.
	low := analytics.LowPerformingProducts(transactions, opts.LowSalesThreshold)
	if len(low) > 0 {
		fmt.Fprintf(&b, "Low Performing Products (under %d units)\n", opts.LowSalesThreshold)
		b.WriteString("----------------------------------------\n")
		for _, p := range low {
			fmt.Fprintf(&b, "%-20s qty %-5d revenue %.2f\n",
				p.ProductName, p.TotalQuantity, p.TotalRevenue)
		}
		b.WriteByte('\n')
	}

	// Peak day.
	if peak, ok := analytics.PeakSalesDay(transactions); ok {
		fmt.Fprintf(&b, "Peak Sales Day: %s (revenue %.2f over %d transactions)\n",
			peak.Date, peak.Revenue, peak.TransactionCount)
	}

	return b.String()
}

// =============================================================================
// XLSX WORKBOOK
// =============================================================================

// ExportWorkbook writes the enriched dataset and the regional breakdown to
// an XLSX workbook at path, one sheet each.
func ExportWorkbook(enriched []types.EnrichedTransaction, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "Transactions"
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	// Header row.
	for col, name := range enrichedHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(dataSheet, cell, name); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}

	// Data rows.
	for i, e := range enriched {
		values := []interface{}{
			e.TransactionID, e.Date, e.ProductID, e.ProductName,
			e.Quantity, e.UnitPrice, e.CustomerID, e.Region,
			e.APICategory, e.APIBrand, e.APIRating, e.Matched,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("building data cell: %w", err)
			}
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return fmt.Errorf("writing data cell: %w", err)
			}
		}
	}

	// Regional breakdown sheet.
	const regionSheet = "Regions"
	if _, err := f.NewSheet(regionSheet); err != nil {
		return fmt.Errorf("creating region sheet: %w", err)
	}

	transactions := make([]types.Transaction, 0, len(enriched))
	for _, e := range enriched {
		transactions = append(transactions, e.Transaction)
	}

	regionHeader := []interface{}{"Region", "TotalSales", "TransactionCount", "Percentage"}
	for col, v := range regionHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(regionSheet, cell, v); err != nil {
			return fmt.Errorf("writing region header: %w", err)
		}
	}
	for i, r := range analytics.RegionWiseSales(transactions) {
		values := []interface{}{r.Region, r.TotalSales, r.TransactionCount, r.Percentage}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(regionSheet, cell, v); err != nil {
				return fmt.Errorf("writing region row: %w", err)
			}
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating workbook directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// =============================================================================
// FORMAT HELPERS
// =============================================================================

// formatFloat renders a price without trailing zero noise.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatRating renders the API rating, empty when the product never matched.
func formatRating(e types.EnrichedTransaction) string {
	if !e.Matched {
		return ""
	}
	return strconv.FormatFloat(e.APIRating, 'f', -1, 64)
}
