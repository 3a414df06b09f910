// Package parser defines the interface implemented by every record ingestion format.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"finsight/insights/internal/models"
	"finsight/insights/internal/parsererror"
)

// Parser decodes an uploaded document into raw transaction records.
// Implementations return *parsererror.InvalidFormatError when the document as a
// whole cannot be read; per-record problems are left to validation.
type Parser interface {
	Parse(r io.Reader) ([]models.RawRecord, error)
}

// Format identifies an ingestion format.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	CAMT Format = "camt"
)

// ParseFormat validates a user-supplied format name. "xml" is accepted as an alias of camt.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "camt", "camt053", "camt.053", "xml":
		return CAMT, nil
	default:
		return "", &parsererror.UnsupportedFormatError{Kind: "input", Format: s}
	}
}

// FormatFromFilename infers the format from a file extension.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %q: %w", name,
			&parsererror.UnsupportedFormatError{Kind: "input", Format: ""})
	}
	return ParseFormat(ext)
}
