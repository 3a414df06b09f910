// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"finsight/insights/internal/container"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"
	"finsight/insights/internal/report"
)

// AggregateOptions selects the inputs and the rendering of an aggregation run.
type AggregateOptions struct {
	Inputs       []string
	InputFormat  parser.Format
	OutputFormat report.Format
	Series       report.Series
}

// ProcessFiles loads every input, enriches categories when enabled, aggregates
// and renders the result. When no usable record remains the result is returned
// together with an error wrapping parsererror.ErrInsufficientData.
func ProcessFiles(ctx context.Context, c *container.Container, opts AggregateOptions) ([]byte, models.AggregationResult, error) {
	logger := c.GetLogger()

	records, err := c.GetLoader().LoadFiles(ctx, opts.Inputs, opts.InputFormat)
	if err != nil {
		return nil, models.AggregationResult{}, err
	}

	if cat := c.GetCategorizer(); cat != nil {
		records, _ = cat.Enrich(ctx, records)
	}

	result := c.GetAggregator().Run(records)
	if !result.HasData() {
		logger.Warn("No usable record remains",
			logging.F(logging.FieldSkipped, result.Skipped))
		return nil, result, fmt.Errorf("%w: %d records read, none usable", parsererror.ErrInsufficientData, len(records))
	}

	out, err := c.GetGenerator().Generate(result, opts.OutputFormat, opts.Series)
	if err != nil {
		return nil, result, err
	}
	return out, result, nil
}

// WriteOutput writes data to path, or to stdout when path is empty or "-".
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return report.WriteFile(path, data)
}
