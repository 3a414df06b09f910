// Package parsererror defines the typed errors returned by record ingestion and validation.
package parsererror

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInsufficientData is returned when no usable record remains after validation.
var ErrInsufficientData = errors.New("insufficient data")

// ParseError represents a field that could not be parsed
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input value that is well-formed but not acceptable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// InvalidFormatError represents a document that does not conform to the expected
// format for a specific parser.
type InvalidFormatError struct {
	Source               string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in '%s': %s. Expected: %s. Content snippet: '%s'",
			e.Source, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s",
		e.Source, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned when no parser or renderer handles the requested format.
type UnsupportedFormatError struct {
	Kind   string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported %s format: %q", e.Kind, e.Format)
}

// Snippet truncates content for inclusion in an InvalidFormatError. The cut
// backs off to a rune boundary so multi-byte characters are never split.
func Snippet(content []byte, max int) string {
	if len(content) <= max {
		return string(content)
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return string(content[:cut]) + "..."
}
