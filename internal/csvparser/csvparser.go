// Package csvparser reads transaction records from delimited text with a header row.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter = ','

// RequiredColumns must be present in the header row. Other columns are optional.
var RequiredColumns = []string{"date", "amount", "type"}

// CSVParser decodes rows into models.RawRecord using the csv struct tags.
type CSVParser struct {
	parser.BaseParser
	delimiter rune
}

// NewCSVParser creates a CSVParser. A zero delimiter selects DefaultDelimiter.
func NewCSVParser(logger logging.Logger, delimiter rune) *CSVParser {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &CSVParser{
		BaseParser: parser.NewBaseParser(logger),
		delimiter:  delimiter,
	}
}

// Delimiter returns the field separator in use.
func (p *CSVParser) Delimiter() rune {
	return p.delimiter
}

// Parse implements parser.Parser. Header names are matched case-insensitively.
func (p *CSVParser) Parse(r io.Reader) ([]models.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV input: %w", err)
	}
	// Excel exports often start with a byte order mark.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.RawRecord{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, p.formatError(data, err)
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:               "csv",
			ExpectedFormat:       "header row with " + strings.Join(RequiredColumns, ","),
			ActualContentSnippet: parsererror.Snippet(data, 64),
			Msg:                  "missing columns: " + strings.Join(missing, ","),
		}
	}

	records := []models.RawRecord{}
	if err := gocsv.UnmarshalCSV(&rowsReader{rows: rows}, &records); err != nil {
		return nil, p.formatError(data, err)
	}

	p.GetLogger().Debug("Decoded CSV records",
		logging.F(logging.FieldParser, string(parser.CSV)),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

func (p *CSVParser) formatError(data []byte, err error) error {
	return &parsererror.InvalidFormatError{
		Source:               "csv",
		ExpectedFormat:       fmt.Sprintf("CSV delimited by %q", p.delimiter),
		ActualContentSnippet: parsererror.Snippet(data, 64),
		Msg:                  err.Error(),
		Err:                  err,
	}
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// rowsReader replays already-read rows to gocsv, which lets the header be normalised first.
type rowsReader struct {
	rows [][]string
	pos  int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}
