// Package report renders an aggregation result as JSON, YAML or CSV.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parsererror"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// Series selects the dataset view written by the CSV format.
type Series string

const (
	SeriesMonthly    Series = "monthly"
	SeriesCategories Series = "categories"
	SeriesClients    Series = "clients"
	SeriesMargin     Series = "margin"
)

// ParseFormat validates an output format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "csv":
		return CSV, nil
	default:
		return "", &parsererror.UnsupportedFormatError{Kind: "output", Format: s}
	}
}

// ParseSeries validates a series name. Empty selects the monthly series.
func ParseSeries(s string) (Series, error) {
	switch Series(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeriesMonthly:
		return SeriesMonthly, nil
	case SeriesCategories:
		return SeriesCategories, nil
	case SeriesClients:
		return SeriesClients, nil
	case SeriesMargin:
		return SeriesMargin, nil
	default:
		return "", &parsererror.UnsupportedFormatError{Kind: "series", Format: s}
	}
}

// Document is the rendered shape of a result: the four chart series plus the
// warnings for skipped records.
type Document struct {
	models.ChartDataset `yaml:",inline"`
	Warnings            []models.RecordWarning `json:"warnings" yaml:"warnings"`
}

// NewDocument builds a Document with non-nil collections.
func NewDocument(result models.AggregationResult) Document {
	doc := Document{ChartDataset: result.Dataset, Warnings: result.Warnings}
	empty := models.NewChartDataset()
	if doc.MonthlyData == nil {
		doc.MonthlyData = empty.MonthlyData
	}
	if doc.CategoryBreakdown == nil {
		doc.CategoryBreakdown = empty.CategoryBreakdown
	}
	if doc.TopClients == nil {
		doc.TopClients = empty.TopClients
	}
	if doc.MarginData == nil {
		doc.MarginData = empty.MarginData
	}
	if doc.Warnings == nil {
		doc.Warnings = []models.RecordWarning{}
	}
	return doc
}

// Generator renders aggregation results.
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator. A zero delimiter selects comma for CSV output.
func NewGenerator(logger logging.Logger, delimiter rune) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Generator{logger: logger, delimiter: delimiter}
}

// Generate renders result in the given format. series is only used by CSV.
func (g *Generator) Generate(result models.AggregationResult, format Format, series Series) ([]byte, error) {
	doc := NewDocument(result)
	switch format {
	case JSON:
		return g.generateJSON(doc)
	case YAML:
		return g.generateYAML(doc)
	case CSV:
		return g.generateCSV(doc, series)
	default:
		return nil, &parsererror.UnsupportedFormatError{Kind: "output", Format: string(format)}
	}
}

func (g *Generator) generateJSON(doc Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateCSV(doc Document, series Series) ([]byte, error) {
	var rows any
	switch series {
	case "", SeriesMonthly:
		rows = doc.MonthlyData
	case SeriesCategories:
		rows = doc.CategoryBreakdown
	case SeriesClients:
		rows = doc.TopClients
	case SeriesMargin:
		rows = doc.MarginData
	default:
		return nil, &parsererror.UnsupportedFormatError{Kind: "series", Format: string(series)}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = g.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes a rendered report, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
