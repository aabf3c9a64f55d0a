package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

func enrichedSample() []types.EnrichedTransaction {
	return []types.EnrichedTransaction{
		{
			Transaction: types.Transaction{
				TransactionID: "T001", Date: "2024-12-01", ProductID: "P101",
				ProductName: "Laptop", Quantity: 2, UnitPrice: 45000,
				CustomerID: "C001", Region: "North",
			},
			APICategory: "electronics", APIBrand: "Acme", APIRating: 4.5, Matched: true,
		},
		{
			Transaction: types.Transaction{
				TransactionID: "T002", Date: "2024-12-02", ProductID: "P999",
				ProductName: "Mystery", Quantity: 1, UnitPrice: 500,
				CustomerID: "C002", Region: "South",
			},
		},
	}
}

func TestSaveEnriched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "enriched.txt")

	if err := SaveEnriched(enrichedSample(), path); err != nil {
		t.Fatalf("SaveEnriched() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("output has %d lines, want 3 (header + 2 rows)", len(lines))
	}

	wantHeader := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	if lines[1] != "T001|2024-12-01|P101|Laptop|2|45000|C001|North|electronics|Acme|4.5|true" {
		t.Errorf("matched row = %q", lines[1])
	}
	if lines[2] != "T002|2024-12-02|P999|Mystery|1|500|C002|South||||false" {
		t.Errorf("unmatched row = %q", lines[2])
	}
}

func TestWriteSalesReport(t *testing.T) {
	transactions := []types.Transaction{
		{TransactionID: "T001", Date: "2024-12-01", ProductID: "P101", ProductName: "Laptop", Quantity: 2, UnitPrice: 45000, CustomerID: "C001", Region: "North"},
		{TransactionID: "T002", Date: "2024-12-01", ProductID: "P102", ProductName: "Mouse", Quantity: 5, UnitPrice: 500, CustomerID: "C002", Region: "South"},
	}
	summary := types.PipelineSummary{
		LinesRead: 4, Malformed: 1, TotalInput: 3, Invalid: 1, FinalCount: 2,
	}

	path := filepath.Join(t.TempDir(), "sales_report.txt")
	opts := Options{TopProducts: 5, LowSalesThreshold: 10}

	if err := WriteSalesReport(transactions, summary, opts, path); err != nil {
		t.Fatalf("WriteSalesReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"SALES REPORT",
		"Malformed lines:     1",
		"Final records:       2",
		"Total Revenue: 92500.00",
		"North",
		"Peak Sales Day: 2024-12-01",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q\n%s", want, text)
		}
	}
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_report.xlsx")

	if err := ExportWorkbook(enrichedSample(), path); err != nil {
		t.Fatalf("ExportWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	a1, err := f.GetCellValue("Transactions", "A1")
	if err != nil {
		t.Fatalf("reading A1: %v", err)
	}
	if a1 != "TransactionID" {
		t.Errorf("A1 = %q, want TransactionID", a1)
	}

	a2, _ := f.GetCellValue("Transactions", "A2")
	if a2 != "T001" {
		t.Errorf("A2 = %q, want T001", a2)
	}

	r1, _ := f.GetCellValue("Regions", "A2")
	if r1 != "North" {
		t.Errorf("Regions A2 = %q, want North", r1)
	}
}
