// =============================================================================
// Sales Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process') are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sales-analytics)
//   ├── processCmd (sales-analytics process)
//   └── versionCmd (sales-analytics version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sales-analytics",
	Short: "Sales Analytics - ingest, clean and analyze raw sales transaction files",

	Long: `Sales Analytics is a CLI tool that turns raw, inconsistently formatted
sales transaction exports into a validated, filterable dataset with
accompanying reports.

Key Features:
  - Reads legacy exports in UTF-8, ISO-8859-1 or Windows-1252
  - Repairs common malformations (thousands separators, stray whitespace)
  - Drops and counts malformed and invalid records instead of failing
  - Optional region and amount filters
  - Product metadata enrichment from an external API
  - Text and XLSX report generation

Example Usage:
  sales-analytics process                         # Process the configured sales file
  sales-analytics process --file ./sales.txt      # Process a specific file
  sales-analytics process --region North          # Keep only one region`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
