package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/logger"
	"github.com/ginjaninja78/sales-analytics/internal/reader"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
	"github.com/ginjaninja78/sales-analytics/pkg/utils"
)

// stubFetcher serves a fixed catalog without a network.
type stubFetcher struct {
	products []enrichment.Product
	err      error
}

func (s *stubFetcher) FetchAllProducts(ctx context.Context) ([]enrichment.Product, error) {
	return s.products, s.err
}

const sampleData = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
	"T001|2024-12-01|P101|  Laptop |2|45,000|C001|North\n" +
	"T002|2024-12-01|P102|Mouse|-1|500|C002|South\n" +
	"T003|2024-12-01|P103|Keyboard|1|abc|C003|North\n" +
	"T004|2024-12-02|P102|Mouse|5|500|C004|South\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	input := filepath.Join(dir, "sales_data.txt")
	if err := os.WriteFile(input, []byte(sampleData), 0644); err != nil {
		t.Fatalf("writing input fixture: %v", err)
	}

	cfg := config.Default()
	cfg.InputFile = input
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.ArchiveDir = filepath.Join(dir, "archive")
	return cfg
}

func TestRun_FullPipeline(t *testing.T) {
	cfg := testConfig(t)

	p := New(cfg, validation.FilterOptions{}, logger.NewWithWriter(os.Stderr, "error"))
	p.Fetcher = &stubFetcher{products: []enrichment.Product{
		{ID: 101, Title: "Laptop", Category: "electronics", Brand: "Acme", Rating: 4.5},
	}}

	result := p.Run(context.Background())
	if !result.Success {
		t.Fatalf("Run() failed: %v", result.Error)
	}

	s := result.Summary
	if s.LinesRead != 4 || s.Malformed != 1 || s.Invalid != 1 || s.FinalCount != 2 {
		t.Fatalf("summary = %+v", s)
	}
	if s.TotalInput != s.Invalid+s.FilteredByRegion+s.FilteredByAmount+s.FinalCount {
		t.Errorf("summary counts inconsistent: %+v", s)
	}

	if result.MatchedProducts != 1 {
		t.Errorf("MatchedProducts = %d, want 1 (only P101 is in the catalog)", result.MatchedProducts)
	}

	for _, path := range []string{result.DataFile, result.ReportFile, result.WorkbookFile} {
		if !utils.FileExists(path) {
			t.Errorf("expected output file %s to exist", path)
		}
	}

	// The input file is archived on success.
	if utils.FileExists(cfg.InputFile) {
		t.Error("input file should have been archived")
	}
	if !utils.FileExists(result.ArchivePath) {
		t.Errorf("archive file %s missing", result.ArchivePath)
	}
}

func TestRun_WithFilters(t *testing.T) {
	cfg := testConfig(t)
	min := 1000.0

	p := New(cfg, validation.FilterOptions{Region: "North", MinAmount: &min}, logger.NewWithWriter(os.Stderr, "error"))
	p.SkipEnrichment = true
	p.DryRun = true

	result := p.Run(context.Background())
	if !result.Success {
		t.Fatalf("Run() failed: %v", result.Error)
	}

	// T004 (South) drops on region, T001 (North, 90000) survives.
	if result.Summary.FilteredByRegion != 1 || result.Summary.FinalCount != 1 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if result.Transactions[0].TransactionID != "T001" {
		t.Errorf("surviving transaction = %+v", result.Transactions[0])
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := testConfig(t)

	p := New(cfg, validation.FilterOptions{}, logger.NewWithWriter(os.Stderr, "error"))
	p.SkipEnrichment = true
	p.DryRun = true

	result := p.Run(context.Background())
	if !result.Success {
		t.Fatalf("Run() failed: %v", result.Error)
	}

	if result.DataFile != "" || result.ArchivePath != "" {
		t.Errorf("dry run produced output paths: %+v", result)
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("dry run created the output directory")
	}
	if !utils.FileExists(cfg.InputFile) {
		t.Error("dry run archived the input file")
	}
}

func TestRun_UnavailableAPIDegradesToUnenriched(t *testing.T) {
	cfg := testConfig(t)

	p := New(cfg, validation.FilterOptions{}, logger.NewWithWriter(os.Stderr, "error"))
	p.Fetcher = &stubFetcher{err: errors.New("connection refused")}
	p.DryRun = true

	result := p.Run(context.Background())
	if !result.Success {
		t.Fatalf("Run() failed: %v", result.Error)
	}
	if len(result.Enriched) != len(result.Transactions) {
		t.Fatalf("enriched count = %d, want %d", len(result.Enriched), len(result.Transactions))
	}
	if result.MatchedProducts != 0 {
		t.Errorf("MatchedProducts = %d, want 0", result.MatchedProducts)
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputFile = filepath.Join(t.TempDir(), "nope.txt")

	p := New(cfg, validation.FilterOptions{}, logger.NewWithWriter(os.Stderr, "error"))
	p.SkipEnrichment = true

	result := p.Run(context.Background())
	if result.Success {
		t.Fatal("Run() succeeded for a missing input file")
	}

	var readErr *reader.ReadError
	if !errors.As(result.Error, &readErr) {
		t.Fatalf("error type = %T, want *reader.ReadError", result.Error)
	}
	if readErr.Kind != reader.KindFileNotFound {
		t.Errorf("Kind = %q, want %q", readErr.Kind, reader.KindFileNotFound)
	}
}
