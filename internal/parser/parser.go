// =============================================================================
// Sales Analytics - Parser / Cleaner Module
// =============================================================================
//
// This module converts raw lines into structured transactions, repairing the
// malformations the feed is known for:
//   - thousands separators inside numeric fields ("45,000")
//   - stray whitespace around product names
//
// A line that cannot be shaped into a transaction at all is a malformed drop:
// counted, never reported as an error. That covers wrong field counts,
// numbers that do not parse, empty identifiers and identifiers without their
// conventional prefix. Whether a parsed number is in range (positive
// quantity, positive price) is a business rule and belongs to the validator,
// not to this module.
//
// =============================================================================

package parser

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// fieldCount is the fixed number of fields in a well-formed row:
// TransactionID, Date, ProductID, ProductName, Quantity, UnitPrice,
// CustomerID, Region.
const fieldCount = 8

// =============================================================================
// PARSE STATISTICS
// =============================================================================

// Stats reports what happened during one Parse call.
type Stats struct {
	// LinesSeen is the number of raw lines considered.
	LinesSeen int

	// Malformed is the number of lines dropped because they could not be
	// structurally parsed.
	Malformed int

	// Parsed is the number of transactions produced.
	Parsed int
}

// =============================================================================
// PARSER
// =============================================================================

// Parser turns raw lines into transactions.
type Parser struct {
	// delimiter separates fields within a row.
	delimiter string

	// thousandsSeparator is stripped from numeric fields before parsing.
	thousandsSeparator string
}

// New creates a Parser for the given row delimiter and thousands separator.
func New(delimiter, thousandsSeparator string) *Parser {
	return &Parser{
		delimiter:          delimiter,
		thousandsSeparator: thousandsSeparator,
	}
}

// Parse converts raw lines into transactions, preserving input order.
// Malformed lines are dropped and counted in the returned Stats; Parse
// itself never fails.
func (p *Parser) Parse(lines []types.RawLine) ([]types.Transaction, Stats) {
	transactions := make([]types.Transaction, 0, len(lines))
	stats := Stats{}

	for _, line := range lines {
		stats.LinesSeen++

		tx, ok := p.parseLine(line.Text)
		if !ok {
			stats.Malformed++
			continue
		}
		transactions = append(transactions, tx)
	}

	stats.Parsed = len(transactions)
	return transactions, stats
}

// parseLine shapes a single line into a transaction. The boolean is false
// for any structural failure.
func (p *Parser) parseLine(line string) (types.Transaction, bool) {
	parts := strings.Split(line, p.delimiter)
	if len(parts) != fieldCount {
		return types.Transaction{}, false
	}

	transactionID := strings.TrimSpace(parts[0])
	date := strings.TrimSpace(parts[1])
	productID := strings.TrimSpace(parts[2])
	productName := strings.TrimSpace(parts[3])
	customerID := strings.TrimSpace(parts[6])
	region := strings.TrimSpace(parts[7])

	// Identifier shape checks. Downstream consumers classify identifiers by
	// their prefix, so a missing or mis-prefixed identifier is malformed.
	if !hasPrefix(transactionID, "T") || !hasPrefix(productID, "P") || !hasPrefix(customerID, "C") {
		return types.Transaction{}, false
	}
	if productName == "" || region == "" {
		return types.Transaction{}, false
	}

	quantity, ok := p.parseQuantity(parts[4])
	if !ok {
		return types.Transaction{}, false
	}

	unitPrice, ok := p.parsePrice(parts[5])
	if !ok {
		return types.Transaction{}, false
	}

	return types.Transaction{
		TransactionID: transactionID,
		Date:          date,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    customerID,
		Region:        region,
	}, true
}

// parseQuantity parses an integer field after stripping whitespace and
// thousands separators. Sign is preserved; range is the validator's concern.
func (p *Parser) parseQuantity(raw string) (int, bool) {
	cleaned := p.cleanNumber(raw)
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parsePrice parses a float field after stripping whitespace and thousands
// separators.
func (p *Parser) parsePrice(raw string) (float64, bool) {
	cleaned := p.cleanNumber(raw)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// cleanNumber removes surrounding whitespace and every thousands separator.
func (p *Parser) cleanNumber(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), p.thousandsSeparator, "")
}

// hasPrefix reports whether id is non-empty and carries the conventional
// prefix.
func hasPrefix(id, prefix string) bool {
	return id != "" && strings.HasPrefix(id, prefix)
}
