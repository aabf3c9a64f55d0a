// =============================================================================
// Sales Analytics - Pipeline Orchestrator
// =============================================================================
//
// This module wires the stages of one run together:
//
//   1. Read the input file (encoding fallback)
//   2. Parse and clean raw lines into transactions
//   3. Validate and filter
//   4. Enrich with product metadata from the API (optional, best effort)
//   5. Write the enriched dataset, the text report and the XLSX workbook
//   6. Archive the input file
//
// The only failure that aborts a run is an unreadable input file or a write
// failure on output. A dead product API degrades to unenriched output;
// malformed and invalid records degrade the output size. Both are reported
// through the run summary, never as errors.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/parser"
	"github.com/ginjaninja78/sales-analytics/internal/reader"
	"github.com/ginjaninja78/sales-analytics/internal/report"
	"github.com/ginjaninja78/sales-analytics/internal/types"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
	"github.com/ginjaninja78/sales-analytics/pkg/utils"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and output.
	RunID string

	// InputFile is the file this run processed.
	InputFile string

	// Success is true when the run completed, regardless of how many
	// records were dropped along the way.
	Success bool

	// Error is the failure that aborted the run, nil on success.
	Error error

	// Summary holds the per-stage record counts.
	Summary types.PipelineSummary

	// Transactions is the validated, filtered record set.
	Transactions []types.Transaction

	// Enriched is the enriched record set. Populated even when the product
	// API was unavailable; the API fields are then empty.
	Enriched []types.EnrichedTransaction

	// MatchedProducts is how many enriched records found a catalog entry.
	MatchedProducts int

	// DataFile, ReportFile and WorkbookFile are the written output paths,
	// empty on a dry run.
	DataFile     string
	ReportFile   string
	WorkbookFile string

	// ArchivePath is where the input file was moved, empty on a dry run.
	ArchivePath string

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// ProductFetcher is the slice of the enrichment client the pipeline needs.
// It exists so tests can run the pipeline without a network.
type ProductFetcher interface {
	FetchAllProducts(ctx context.Context) ([]enrichment.Product, error)
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline executes one run over one input file.
type Pipeline struct {
	cfg     *config.Config
	filters validation.FilterOptions
	log     zerolog.Logger

	// Fetcher supplies the product catalog. Nil means "use the HTTP client
	// built from the config".
	Fetcher ProductFetcher

	// SkipEnrichment disables the API call entirely; output records carry
	// empty API fields.
	SkipEnrichment bool

	// DryRun skips every filesystem write and the input archive step.
	DryRun bool
}

// New creates a Pipeline for the given configuration and filters.
func New(cfg *config.Config, filters validation.FilterOptions, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		filters: filters,
		log:     log,
	}
}

// Run executes the pipeline over the configured input file.
func (p *Pipeline) Run(ctx context.Context) Result {
	start := time.Now()
	result := Result{
		RunID:     uuid.NewString(),
		InputFile: p.cfg.InputFile,
	}
	log := p.log.With().Str("run_id", result.RunID).Str("file", p.cfg.InputFile).Logger()

	// =========================================================================
	// STEP 1: READ
	// =========================================================================

	r := reader.New(p.cfg.Pipeline.Encodings, p.cfg.Pipeline.Delimiter)
	lines, err := r.Read(p.cfg.InputFile)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}
	log.Info().Int("lines", len(lines)).Msg("read sales data")

	// =========================================================================
	// STEP 2: PARSE AND CLEAN
	// =========================================================================

	parse := parser.New(p.cfg.Pipeline.Delimiter, p.cfg.Pipeline.ThousandsSeparator)
	parsed, stats := parse.Parse(lines)
	log.Info().
		Int("seen", stats.LinesSeen).
		Int("malformed", stats.Malformed).
		Int("parsed", stats.Parsed).
		Msg("parsed transactions")

	// =========================================================================
	// STEP 3: VALIDATE AND FILTER
	// =========================================================================

	valid, summary := validation.ValidateAndFilter(parsed, p.filters)
	summary.LinesRead = stats.LinesSeen
	summary.Malformed = stats.Malformed
	result.Summary = summary
	result.Transactions = valid
	log.Info().
		Int("invalid", summary.Invalid).
		Int("filtered_region", summary.FilteredByRegion).
		Int("filtered_amount", summary.FilteredByAmount).
		Int("final", summary.FinalCount).
		Msg("validated and filtered")

	// Show the operator what the filters could have matched.
	if min, max, ok := validation.AmountRange(valid); ok {
		log.Debug().
			Strs("regions", validation.Regions(valid)).
			Float64("min_amount", min).
			Float64("max_amount", max).
			Msg("filter options")
	}

	// =========================================================================
	// STEP 4: ENRICH
	// =========================================================================

	products := p.fetchProducts(ctx, log)
	result.Enriched = enrichment.Enrich(valid, products)
	result.MatchedProducts = enrichment.MatchCount(result.Enriched)
	if len(result.Enriched) > 0 {
		log.Info().
			Int("matched", result.MatchedProducts).
			Int("total", len(result.Enriched)).
			Msg("enriched transactions")
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	if !p.DryRun {
		if err := p.writeOutputs(&result); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			return result
		}
		log.Info().
			Str("data", result.DataFile).
			Str("report", result.ReportFile).
			Str("workbook", result.WorkbookFile).
			Msg("wrote output files")
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// fetchProducts loads the product catalog, returning an empty map when
// enrichment is disabled or the API is unavailable.
func (p *Pipeline) fetchProducts(ctx context.Context, log zerolog.Logger) map[int]enrichment.Product {
	if p.SkipEnrichment {
		return map[int]enrichment.Product{}
	}

	fetcher := p.Fetcher
	if fetcher == nil {
		fetcher = enrichment.NewClient(p.cfg.API)
	}

	catalog, err := fetcher.FetchAllProducts(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("product API unavailable, skipping enrichment")
		return map[int]enrichment.Product{}
	}
	log.Debug().Int("products", len(catalog)).Msg("fetched product catalog")
	return enrichment.BuildProductMap(catalog)
}

// writeOutputs persists the enriched dataset, the text report and the XLSX
// workbook, then archives the input file.
func (p *Pipeline) writeOutputs(result *Result) error {
	fm := utils.NewFileManager(p.cfg.OutputDir, p.cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	dataName := utils.GenerateOutputFileName(p.cfg.OutputNameFormat, p.cfg.InputFile)
	result.DataFile = filepath.Join(p.cfg.OutputDir, dataName)
	if err := report.SaveEnriched(result.Enriched, result.DataFile); err != nil {
		return fmt.Errorf("saving enriched data: %w", err)
	}

	opts := report.Options{
		TopProducts:       p.cfg.Report.TopProducts,
		LowSalesThreshold: p.cfg.Report.LowSalesThreshold,
	}
	result.ReportFile = filepath.Join(p.cfg.OutputDir, "sales_report.txt")
	if err := report.WriteSalesReport(result.Transactions, result.Summary, opts, result.ReportFile); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	result.WorkbookFile = filepath.Join(p.cfg.OutputDir, "sales_report.xlsx")
	if err := report.ExportWorkbook(result.Enriched, result.WorkbookFile); err != nil {
		return fmt.Errorf("exporting workbook: %w", err)
	}

	archivePath, err := fm.ArchiveInputFile(p.cfg.InputFile)
	if err != nil {
		return fmt.Errorf("archiving input: %w", err)
	}
	result.ArchivePath = archivePath

	return nil
}
