// Package jsonparser reads transaction records sent by the upload API as JSON.
package jsonparser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"
)

const expectedFormat = `JSON array of records or {"records": [...]}`

// envelope is the upload API response shape. KPIs are computed upstream and not needed here.
type envelope struct {
	Records []json.RawMessage `json:"records"`
	KPIs    json.RawMessage   `json:"kpis,omitempty"`
}

// JSONParser parses either a bare array of records or an upload envelope.
type JSONParser struct {
	parser.BaseParser
}

// NewJSONParser creates a JSONParser.
func NewJSONParser(logger logging.Logger) *JSONParser {
	return &JSONParser{BaseParser: parser.NewBaseParser(logger)}
}

// Parse implements parser.Parser.
func (p *JSONParser) Parse(r io.Reader) ([]models.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading JSON input: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:         "json",
			ExpectedFormat: expectedFormat,
			Msg:            "empty document",
		}
	}

	var elements []json.RawMessage
	switch trimmed[0] {
	case '[':
		err = json.Unmarshal(trimmed, &elements)
	case '{':
		var env envelope
		err = json.Unmarshal(trimmed, &env)
		elements = env.Records
	default:
		err = fmt.Errorf("unexpected leading character %q", trimmed[0])
	}
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			Source:               "json",
			ExpectedFormat:       expectedFormat,
			ActualContentSnippet: parsererror.Snippet(trimmed, 64),
			Msg:                  err.Error(),
			Err:                  err,
		}
	}

	records := make([]models.RawRecord, 0, len(elements))
	for i, element := range elements {
		records = append(records, p.decodeRecord(i, element))
	}

	p.GetLogger().Debug("Decoded JSON records",
		logging.F(logging.FieldParser, string(parser.JSON)),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// decodeRecord decodes one array element. A field of the wrong JSON type does
// not fail the document: the field keeps its raw JSON text so that validation
// skips the record with a warning. Elements that are not objects become empty
// records for the same reason.
func (p *JSONParser) decodeRecord(index int, element json.RawMessage) models.RawRecord {
	var record models.RawRecord
	err := json.Unmarshal(element, &record)
	if err == nil {
		return record
	}

	var fields map[string]json.RawMessage
	if ferr := json.Unmarshal(element, &fields); ferr != nil {
		p.GetLogger().Warn("JSON record is not an object",
			logging.F(logging.FieldRecordIndex, index),
			logging.F(logging.FieldError, ferr.Error()))
		return models.RawRecord{}
	}
	p.GetLogger().Debug("Decoding JSON record field by field",
		logging.F(logging.FieldRecordIndex, index),
		logging.F(logging.FieldError, err.Error()))

	lowered := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		lowered[strings.ToLower(k)] = v
	}
	return models.RawRecord{
		Date:         scalarText(lowered["date"]),
		Amount:       models.AmountString(scalarText(lowered["amount"])),
		Type:         scalarText(lowered["type"]),
		Counterparty: scalarText(lowered["counterparty"]),
		Description:  scalarText(lowered["description"]),
		Category:     scalarText(lowered["category"]),
	}
}

// scalarText returns a JSON string unquoted, null or a missing value as "",
// and any other value as its compact JSON text.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
