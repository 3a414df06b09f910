// Package aggregate implements the aggregate command, which turns one or more
// transaction files into a chart dataset.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"finsight/insights/cmd/common"
	"finsight/insights/cmd/root"
	"finsight/insights/internal/container"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"
	"finsight/insights/internal/report"

	"github.com/spf13/cobra"
)

// Flags holds the aggregate command options.
type Flags struct {
	Inputs       []string
	InputFormat  string
	OutputFormat string
	Series       string
	Output       string
}

var flags Flags

// Cmd represents the aggregate command
var Cmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate transaction files into chart datasets",
	Long: `Aggregate reads transaction records from one or more files and prints the
monthly, category, client and margin datasets.

Examples:
  finsight aggregate -i ledger.json
  finsight aggregate -i jan.xml -i feb.xml --output-format csv --series categories -o categories.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), flags, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringSliceVarP(&flags.Inputs, "input", "i", nil, "Input file(s), repeatable")
	Cmd.Flags().StringVar(&flags.InputFormat, "format", "", "Input format: json, csv or camt (default inferred from extension)")
	Cmd.Flags().StringVar(&flags.OutputFormat, "output-format", string(report.JSON), "Output format: json, yaml or csv")
	Cmd.Flags().StringVar(&flags.Series, "series", string(report.SeriesMonthly), "Series rendered by csv output: monthly, categories, clients or margin")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default stdout)")
	_ = Cmd.MarkFlagRequired("input")
}

// Run executes the aggregation with an explicit container and writer.
func Run(ctx context.Context, c *container.Container, f Flags, stdout io.Writer) error {
	if c == nil {
		return fmt.Errorf("application container not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(f.Inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	var inputFormat parser.Format
	if f.InputFormat != "" {
		parsed, err := parser.ParseFormat(f.InputFormat)
		if err != nil {
			return err
		}
		inputFormat = parsed
	}
	outputFormat, err := report.ParseFormat(f.OutputFormat)
	if err != nil {
		return err
	}
	series, err := report.ParseSeries(f.Series)
	if err != nil {
		return err
	}

	logger := c.GetLogger()
	data, result, err := common.ProcessFiles(ctx, c, common.AggregateOptions{
		Inputs:       f.Inputs,
		InputFormat:  inputFormat,
		OutputFormat: outputFormat,
		Series:       series,
	})
	if errors.Is(err, parsererror.ErrInsufficientData) {
		for _, w := range result.Warnings {
			logger.Warn("Skipped record",
				logging.F(logging.FieldRecordIndex, w.Index),
				logging.F(logging.FieldRecordField, w.Field),
				logging.F(logging.FieldReason, w.Reason))
		}
		return fmt.Errorf("insufficient data: %w", err)
	}
	if err != nil {
		return err
	}

	if err := common.WriteOutput(f.Output, data, stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("Aggregation complete",
		logging.F(logging.FieldAccepted, result.Accepted),
		logging.F(logging.FieldSkipped, result.Skipped),
		logging.F(logging.FieldFormat, string(outputFormat)))
	return nil
}
