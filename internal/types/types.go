// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - reader
//   - parser
//   - validation
//   - analytics
//   - enrichment
//   - report
//
// =============================================================================

package types

// =============================================================================
// RAW INPUT TYPES
// =============================================================================

// RawLine is a single non-blank line of text read from the source file.
// It only lives between the reader and the parser.
type RawLine struct {
	// Number is the 1-based line number in the original file.
	// Blank lines and the header still advance the count.
	Number int

	// Text is the line content with the trailing newline removed.
	Text string
}

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction is one structurally parsed sales record.
//
// Once a Transaction has passed validation, Quantity > 0 and UnitPrice > 0
// hold unconditionally. Downstream consumers (analytics, enrichment, report)
// rely on that and do not re-check.
type Transaction struct {
	// TransactionID is the transaction identifier, prefixed "T".
	TransactionID string

	// Date is the transaction date in YYYY-MM-DD form.
	// Only the shape is guaranteed, not calendar validity.
	Date string

	// ProductID is the product identifier, prefixed "P".
	ProductID string

	// ProductName is the product label with surrounding whitespace stripped.
	ProductName string

	// Quantity is the number of units sold.
	Quantity int

	// UnitPrice is the per-unit price. Thousands separators present in the
	// source file have already been stripped by the parser.
	UnitPrice float64

	// CustomerID is the customer identifier, prefixed "C".
	CustomerID string

	// Region is a free-form region label used for filtering.
	Region string
}

// Amount returns the total value of the transaction.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction joined with product metadata fetched
// from the external product API. When no API product matched, the API fields
// are zero values and Matched is false.
type EnrichedTransaction struct {
	Transaction

	// APICategory is the product category reported by the API.
	APICategory string

	// APIBrand is the product brand reported by the API.
	APIBrand string

	// APIRating is the product rating reported by the API.
	APIRating float64

	// Matched reports whether the ProductID resolved to an API product.
	Matched bool
}

// =============================================================================
// PIPELINE SUMMARY
// =============================================================================

// PipelineSummary is a snapshot of per-stage drop counts for one pipeline
// run. It is created once per run and never modified after the filtering
// stage returns it.
//
// The validator-stage counts are mutually consistent:
//
//	TotalInput == Invalid + FilteredByRegion + FilteredByAmount + FinalCount
//
// Each record is attributed to exactly one bucket: the first check it failed.
type PipelineSummary struct {
	// LinesRead is the number of non-blank data lines the reader produced.
	LinesRead int

	// Malformed is the number of lines dropped by the parser because they
	// could not be shaped into a Transaction.
	Malformed int

	// TotalInput is the number of records considered by the validator.
	TotalInput int

	// Invalid is the number of records dropped for business-rule failure
	// (non-positive quantity or price).
	Invalid int

	// FilteredByRegion is the number of valid records dropped by the region
	// filter.
	FilteredByRegion int

	// FilteredByAmount is the number of valid records dropped by the min or
	// max amount filter.
	FilteredByAmount int

	// FinalCount is the number of records that survived every stage.
	FinalCount int
}
