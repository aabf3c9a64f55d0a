// =============================================================================
// Sales Analytics - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full ingestion
// pipeline over the configured sales data file.
//
// COMMAND USAGE:
//   sales-analytics process [flags]
//
// FLAGS:
//   --file        : Process a specific file instead of the configured one
//   --region      : Keep only transactions from this region
//   --min-amount  : Keep only transactions with amount >= this value
//   --max-amount  : Keep only transactions with amount <= this value
//   --no-enrich   : Skip the product API enrichment step
//   --dry-run     : Run the pipeline without writing or archiving anything
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read the input file (encoding fallback)
//   3. Parse and clean raw lines into transactions
//   4. Validate records and apply the requested filters
//   5. Enrich with product metadata from the API
//   6. Write the enriched dataset, text report and XLSX workbook
//   7. Archive the processed input file
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/logger"
	"github.com/ginjaninja78/sales-analytics/internal/pipeline"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
	"github.com/ginjaninja78/sales-analytics/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile overrides the configured input file when non-empty.
var inputFile string

// regionFilter keeps only transactions from this region when non-empty.
var regionFilter string

// minAmount and maxAmount bound the transaction amount filter. Whether a
// bound applies is decided by flag presence, not by the default value, so
// an explicit --min-amount=-1 is applied as a real (if vacuous) filter.
var minAmount float64
var maxAmount float64

// noEnrich skips the product API enrichment step.
var noEnrich bool

// dryRun runs the pipeline without writing output or archiving input.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the ingestion pipeline over the sales data file",
	Long: `The process command reads the raw sales data file, parses and cleans its
rows, validates them against the business rules, applies any requested
filters, enriches the result with product metadata, and writes the enriched
dataset together with text and XLSX reports.

When the configured input is a directory, every *.txt file inside it is
discovered and processed in turn.

Malformed lines and invalid records never abort a run; they are dropped and
counted, and the counts appear in the run summary. The only fatal failures
are an unreadable input file and output write errors.

On successful processing:
  - The enriched dataset is placed in the output directory
  - The sales report (text and XLSX) is generated next to it
  - The original input file is moved to the archive directory`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&inputFile,
		"file",
		"",
		"Process a specific file instead of the configured input file or directory",
	)

	processCmd.Flags().StringVar(
		&regionFilter,
		"region",
		"",
		"Keep only transactions from this region (case-insensitive)",
	)

	processCmd.Flags().Float64Var(
		&minAmount,
		"min-amount",
		-1,
		"Keep only transactions with amount greater than or equal to this value",
	)

	processCmd.Flags().Float64Var(
		&maxAmount,
		"max-amount",
		-1,
		"Keep only transactions with amount less than or equal to this value",
	)

	processCmd.Flags().BoolVar(
		&noEnrich,
		"no-enrich",
		false,
		"Skip the product API enrichment step",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files or archiving input",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess loads the configuration, builds the pipeline and executes it.
func runProcess(cmd *cobra.Command) error {
	// Load configuration. A missing config file is fine: defaults cover a
	// conventional directory layout.
	var cfg *config.Config
	if utils.FileExists(cfgFile) {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if inputFile != "" {
		cfg.InputFile = inputFile
	}

	// A directory input means "process every data file in it".
	inputs := []string{cfg.InputFile}
	if info, err := os.Stat(cfg.InputFile); err == nil && info.IsDir() {
		discovered, err := utils.DiscoverInputFiles(cfg.InputFile, "*.txt")
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
		if len(discovered) == 0 {
			return fmt.Errorf("no *.txt files found in %s", cfg.InputFile)
		}
		inputs = discovered
	}

	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log := logger.New(logLevel)

	// Translate flags into filter options. An amount bound applies only
	// when its flag was passed on the command line.
	filters := validation.FilterOptions{
		Region: regionFilter,
	}
	if cmd.Flags().Changed("min-amount") {
		v := minAmount
		filters.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v := maxAmount
		filters.MaxAmount = &v
	}

	for _, in := range inputs {
		runCfg := *cfg
		runCfg.InputFile = in

		p := pipeline.New(&runCfg, filters, log)
		p.SkipEnrichment = noEnrich
		p.DryRun = dryRun

		result := p.Run(context.Background())
		if !result.Success {
			return fmt.Errorf("pipeline failed for %s: %w", in, result.Error)
		}
		printSummary(result)
	}
	return nil
}

// printSummary renders the run summary to stdout.
func printSummary(result pipeline.Result) {
	fmt.Println("=== Sales Analytics ===")
	fmt.Printf("Run:                 %s\n", result.RunID)
	fmt.Printf("Input:               %s\n", result.InputFile)
	fmt.Printf("Lines read:          %d\n", result.Summary.LinesRead)
	fmt.Printf("Malformed lines:     %d\n", result.Summary.Malformed)
	fmt.Printf("Invalid records:     %d\n", result.Summary.Invalid)
	fmt.Printf("Filtered by region:  %d\n", result.Summary.FilteredByRegion)
	fmt.Printf("Filtered by amount:  %d\n", result.Summary.FilteredByAmount)
	fmt.Printf("Final records:       %d\n", result.Summary.FinalCount)
	if len(result.Enriched) > 0 {
		fmt.Printf("Enriched:            %d/%d matched\n", result.MatchedProducts, len(result.Enriched))
	}
	if result.DataFile != "" {
		fmt.Printf("Output:              %s\n", result.DataFile)
		fmt.Printf("Report:              %s\n", result.ReportFile)
		fmt.Printf("Workbook:            %s\n", result.WorkbookFile)
		fmt.Printf("Archived input:      %s\n", result.ArchivePath)
	}
	fmt.Printf("Duration:            %s\n", result.Duration.Round(time.Millisecond))
}
