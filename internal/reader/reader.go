// =============================================================================
// Sales Analytics - File Reader Module
// =============================================================================
//
// This module is responsible for reading the raw sales data file. Legacy
// exports arrive in inconsistent encodings, so the reader tries an ordered
// list of candidate encodings and uses the first one that decodes the whole
// file cleanly:
//   1. UTF-8 (the modern export path)
//   2. ISO-8859-1 (legacy Western exports)
//   3. Windows-1252 (legacy Windows exports)
//
// NORMALIZATION:
//   - Blank and whitespace-only lines are discarded
//   - A single leading header line is discarded when the first non-blank
//     line matches the known column names (case-insensitive). Anything that
//     does not look like a header is treated as data and left for the parser
//     to judge.
//
// ERROR HANDLING:
//   All failures surface as *ReadError carrying the file path and the
//   underlying cause. Nothing else escapes this boundary.
//
// =============================================================================

package reader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind classifies a read failure.
type ErrorKind string

const (
	// KindFileNotFound means the input file does not exist.
	KindFileNotFound ErrorKind = "file_not_found"

	// KindFileUnreadable means the file exists but could not be read
	// (permissions, it is a directory, ...).
	KindFileUnreadable ErrorKind = "file_unreadable"

	// KindEncodingUnresolved means no candidate encoding decoded the file.
	KindEncodingUnresolved ErrorKind = "encoding_unresolved"
)

// ReadError is the only error type returned by this package.
type ReadError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path is the input file path the failure relates to.
	Path string

	// Err is the underlying cause, nil for encoding failures.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("read %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("read %s: %s", e.Path, e.Kind)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// =============================================================================
// READER
// =============================================================================

// expectedHeader is the canonical column order of the sales feed, used for
// best-effort header detection.
var expectedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
}

// Reader reads and normalizes a raw sales data file.
type Reader struct {
	// encodings is the ordered candidate encoding list.
	encodings []string

	// delimiter is the row field separator, needed for header detection.
	delimiter string
}

// New creates a Reader for the given candidate encodings and row delimiter.
func New(encodings []string, delimiter string) *Reader {
	return &Reader{
		encodings: encodings,
		delimiter: delimiter,
	}
}

// Read loads the file at path and returns its normalized data lines.
//
// The entire file is read into memory, decoded under the first working
// candidate encoding, split into lines, and stripped of blank lines and of
// one leading header line if present. Line numbers refer to the original
// file, so diagnostics still line up after normalization.
//
// On failure the returned error is always a *ReadError.
func (r *Reader) Read(path string) ([]types.RawLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := KindFileUnreadable
		if errors.Is(err, os.ErrNotExist) {
			kind = KindFileNotFound
		}
		return nil, &ReadError{Kind: kind, Path: path, Err: err}
	}

	text, ok := decode(data, r.encodings)
	if !ok {
		return nil, &ReadError{Kind: KindEncodingUnresolved, Path: path}
	}

	return r.normalize(text), nil
}

// normalize splits decoded text into lines, dropping blank lines and at
// most one leading header line.
func (r *Reader) normalize(text string) []types.RawLine {
	lines := strings.Split(text, "\n")

	raw := make([]types.RawLine, 0, len(lines))
	headerSeen := false

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// The first non-blank line may be the column header. If it does not
		// look like one it flows through as data and the parser decides.
		if !headerSeen {
			headerSeen = true
			if r.isHeader(line) {
				continue
			}
		}

		raw = append(raw, types.RawLine{Number: i + 1, Text: line})
	}

	return raw
}

// isHeader reports whether line matches the expected column header,
// comparing field by field, case-insensitively, ignoring surrounding
// whitespace.
func (r *Reader) isHeader(line string) bool {
	fields := strings.Split(line, r.delimiter)
	if len(fields) != len(expectedHeader) {
		return false
	}
	for i, field := range fields {
		if !strings.EqualFold(strings.TrimSpace(field), expectedHeader[i]) {
			return false
		}
	}
	return true
}

// =============================================================================
// ENCODING FALLBACK
// =============================================================================

// decode tries each candidate encoding in order and returns the decoded
// text of the first one that decodes the whole file without error.
func decode(data []byte, encodings []string) (string, bool) {
	for _, name := range encodings {
		if text, err := decodeAs(data, name); err == nil {
			return text, true
		}
	}
	return "", false
}

// decodeAs decodes data under a single named encoding.
//
// For the single-byte charmaps a byte that has no mapping comes back as the
// Unicode replacement character; a file that produces one did not decode
// cleanly, so that counts as a decode error unless the replacement rune was
// genuinely present in the source.
func decodeAs(data []byte, name string) (string, error) {
	switch name {
	case "UTF-8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 byte sequence")
		}
		return string(data), nil

	case "ISO-8859-1":
		return decodeCharmap(data, charmap.ISO8859_1)

	case "Windows-1252":
		return decodeCharmap(data, charmap.Windows1252)

	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}

// decodeCharmap decodes data under a single-byte character map.
func decodeCharmap(data []byte, cm *charmap.Charmap) (string, error) {
	decoded, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", cm, err)
	}
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", fmt.Errorf("decode %s: unmapped byte", cm)
	}
	return string(decoded), nil
}
