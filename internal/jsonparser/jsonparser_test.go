package jsonparser

import (
	"errors"
	"strings"
	"testing"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Array(t *testing.T) {
	input := `[
		{"date": "2026-03-15", "amount": 1000, "type": "income", "counterparty": "Acme"},
		{"date": "2026-03-20", "amount": "500.00", "type": "expense", "category": "Rent"}
	]`

	records, err := NewJSONParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []models.RawRecord{
		{Date: "2026-03-15", Amount: "1000", Type: "income", Counterparty: "Acme"},
		{Date: "2026-03-20", Amount: "500.00", Type: "expense", Category: "Rent"},
	}, records)
}

func TestJSONParser_Envelope(t *testing.T) {
	input := `{
		"kpis": {"dso": 42, "bfr": 12000},
		"records": [{"date": "2026-01-02", "amount": 12.5, "type": "expense", "description": "Coffee"}]
	}`

	records, err := NewJSONParser(nil).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AmountString("12.5"), records[0].Amount)
	assert.Equal(t, "Coffee", records[0].Description)
}

func TestJSONParser_EmptyArray(t *testing.T) {
	records, err := NewJSONParser(nil).Parse(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestJSONParser_EnvelopeWithoutRecords(t *testing.T) {
	records, err := NewJSONParser(nil).Parse(strings.NewReader(`{"kpis": {}}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONParser_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"scalar", `"records"`},
		{"truncated", `[{"date": "2026-01-02"`},
		{"html", `<html></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSONParser(nil).Parse(strings.NewReader(tt.input))
			var formatErr *parsererror.InvalidFormatError
			assert.True(t, errors.As(err, &formatErr), "got %v", err)
		})
	}
}

func TestJSONParser_MistypedFieldsKeepRecord(t *testing.T) {
	input := `[
		{"date": "2026-03-15", "amount": 1000, "type": "income", "counterparty": "Acme"},
		{"date": "2026-03-16", "amount": true, "type": "income"},
		{"date": 1773532800000, "amount": 5, "type": "expense", "Category": "Rent"},
		{"date": "2026-03-17", "amount": null, "type": ["expense"]},
		42
	]`

	mock := logging.NewMockLogger()
	records, err := NewJSONParser(mock).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "Acme", records[0].Counterparty)
	assert.Equal(t, models.RawRecord{Date: "2026-03-16", Amount: "true", Type: "income"}, records[1])
	assert.Equal(t, models.RawRecord{Date: "1773532800000", Amount: "5", Type: "expense", Category: "Rent"}, records[2])
	assert.Equal(t, models.RawRecord{Date: "2026-03-17", Type: `["expense"]`}, records[3])
	assert.Equal(t, models.RawRecord{}, records[4])
	assert.True(t, mock.HasEntry("WARN", "JSON record is not an object"))
}

func TestScalarText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"abc"`, "abc"},
		{`null`, ""},
		{``, ""},
		{`12.50`, "12.50"},
		{`false`, "false"},
		{`{ "a" : 1 }`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, scalarText([]byte(tt.raw)))
		})
	}
}
